package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// examShape mirrors the question list requested for an exam: an array of
// objects with nullable options and points and a closed difficulty enum.
var examShape = &Schema{
	Name: "test-exam-questions",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"type":       map[string]any{"type": "string", "enum": []string{"mcq", "tf", "short", "essay"}},
				"chapter":    map[string]any{"type": "string"},
				"difficulty": map[string]any{"type": "string", "enum": []string{"Biết", "Hiểu", "Vận dụng"}},
				"question":   map[string]any{"type": "string"},
				"options":    map[string]any{"type": []string{"array", "null"}, "items": map[string]any{"type": "string"}},
				"answer":     map[string]any{"type": "string"},
				"solution":   map[string]any{"type": "string"},
				"points":     map[string]any{"type": []string{"number", "null"}},
			},
			"required": []string{"type", "question", "answer", "solution", "chapter", "difficulty"},
		},
	},
}

const (
	mcqItem   = `{"type":"mcq","chapter":"Số nguyên","difficulty":"Hiểu","question":"-3 + 5 = ?","options":["A. 2","B. -2","C. 8","D. -8"],"answer":"A","solution":"5 - 3 = 2"}`
	shortItem = `{"type":"short","chapter":"Số nguyên","difficulty":"Biết","question":"Số đối của 7?","options":null,"answer":"-7","solution":"Đổi dấu.","points":null}`
	essayItem = `{"type":"essay","chapter":"Số nguyên","difficulty":"Vận dụng","question":"Tính nhanh.","answer":"0","solution":"Nhóm các số đối.","points":1.5}`
)

func TestCheckReply(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		wantErr string
	}{
		{"full batch", "[" + mcqItem + "," + shortItem + "," + essayItem + "]", ""},
		{"null options and points", "[" + shortItem + "]", ""},
		{"empty list", "[]", ""},
		{"bad difficulty", `[{"type":"mcq","chapter":"c","difficulty":"Khó","question":"q","answer":"A","solution":"s"}]`, "test-exam-questions"},
		{"unknown type", `[{"type":"matching","chapter":"c","difficulty":"Hiểu","question":"q","answer":"A","solution":"s"}]`, "test-exam-questions"},
		{"missing solution", `[{"type":"short","chapter":"c","difficulty":"Hiểu","question":"q","answer":"1"}]`, "test-exam-questions"},
		{"options not a list", `[{"type":"mcq","chapter":"c","difficulty":"Hiểu","question":"q","options":"A B C D","answer":"A","solution":"s"}]`, "test-exam-questions"},
		{"points as text", `[{"type":"essay","chapter":"c","difficulty":"Hiểu","question":"q","answer":"a","solution":"s","points":"2"}]`, "test-exam-questions"},
		{"object root", `{"questions":[` + mcqItem + `]}`, "test-exam-questions"},
		{"truncated", "[" + mcqItem + `,{"type":"tf"`, "invalid JSON"},
		{"empty", "  ", "empty reply"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkReply(examShape, json.RawMessage(tt.reply))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected *ErrInvalidResponse, got %T (%v)", err, err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
			if string(inv.Content) != tt.reply {
				t.Error("error should carry the reply")
			}
		})
	}
}

func TestCheckReply_NilSchemaAcceptsText(t *testing.T) {
	if err := checkReply(nil, json.RawMessage(`Đây không phải JSON`)); err != nil {
		t.Fatalf("expected no error with nil schema, got %v", err)
	}
}

func TestCheckReply_WrappedRoot(t *testing.T) {
	def, wrapped := objectRootSchema(examShape.Definition)
	if !wrapped {
		t.Fatal("array root should be wrapped")
	}
	envelope := &Schema{Name: "test-exam-envelope", Definition: def}

	if err := checkReply(envelope, json.RawMessage(`{"items":[`+essayItem+`]}`)); err != nil {
		t.Fatalf("wrapped batch rejected: %v", err)
	}
	if err := checkReply(envelope, json.RawMessage(`[`+essayItem+`]`)); err == nil {
		t.Fatal("bare array should not match the envelope")
	}
}

func TestCompile_Cached(t *testing.T) {
	a, err := compile(examShape)
	if err != nil {
		t.Fatal(err)
	}
	b, err := compile(examShape)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected the compiled schema to be reused")
	}
}
