package llm

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-3-pro-preview"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"age":   map[string]any{"type": "integer"},
			"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			"scores": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"name", "age"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["name"].Type != "STRING" {
		t.Fatalf("expected STRING for name, got %s", schema.Properties["name"].Type)
	}
	if schema.Properties["age"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for age, got %s", schema.Properties["age"].Type)
	}
	if len(schema.Properties["grade"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["grade"].Enum))
	}
	if schema.Properties["scores"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for scores, got %s", schema.Properties["scores"].Type)
	}
	if schema.Properties["scores"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for scores items, got %s", schema.Properties["scores"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_NullableUnion(t *testing.T) {
	def := map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"options": map[string]any{
					"type":  []any{"array", "null"},
					"items": map[string]any{"type": "string"},
				},
				"points": map[string]any{"type": []any{"number", "null"}},
			},
		},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "ARRAY" {
		t.Fatalf("expected ARRAY root, got %s", schema.Type)
	}
	opts := schema.Items.Properties["options"]
	if opts.Type != "ARRAY" {
		t.Errorf("expected ARRAY for options, got %s", opts.Type)
	}
	if opts.Nullable == nil || !*opts.Nullable {
		t.Error("expected options to be nullable")
	}
	pts := schema.Items.Properties["points"]
	if pts.Type != "NUMBER" {
		t.Errorf("expected NUMBER for points, got %s", pts.Type)
	}
	if pts.Nullable == nil || !*pts.Nullable {
		t.Error("expected points to be nullable")
	}
}

func TestBuildGeminiSchema_OrdersExamFields(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"solution":   map[string]any{"type": "string"},
			"answer":     map[string]any{"type": "string"},
			"question":   map[string]any{"type": "string"},
			"type":       map[string]any{"type": "string", "enum": []string{"mcq", "tf"}},
			"zz_note":    map[string]any{"type": "string"},
			"difficulty": map[string]any{"type": "string"},
		},
		"required": []string{"type", "question"},
	}

	s := buildGeminiSchema(def)

	want := []string{"type", "difficulty", "question", "answer", "solution", "zz_note"}
	if !slices.Equal(s.PropertyOrdering, want) {
		t.Errorf("PropertyOrdering = %v, want %v", s.PropertyOrdering, want)
	}
	if len(s.Required) != 2 || len(s.Properties["type"].Enum) != 2 {
		t.Errorf("[]string required/enum not read: %v %v", s.Required, s.Properties["type"].Enum)
	}
}

func TestGeminiContents_Roles(t *testing.T) {
	got := geminiContents([]Message{
		{Role: RoleUser, Content: "Tạo 1 câu hỏi"},
		{Role: RoleAssistant, Content: "[]"},
	})
	if got[0].Role != "user" || got[1].Role != "model" {
		t.Errorf("roles = %q, %q", got[0].Role, got[1].Role)
	}
	if got[0].Parts[0].Text != "Tạo 1 câu hỏi" {
		t.Errorf("text = %q", got[0].Parts[0].Text)
	}
}

func TestMapGeminiError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want any
	}{
		{"bad key", genai.APIError{Code: 400, Message: "API key not valid. Please pass a valid API key."}, &ErrAuthentication{}},
		{"wrapped forbidden", fmt.Errorf("generate: %w", genai.APIError{Code: 403, Message: "permission denied"}), &ErrAuthentication{}},
		{"quota", genai.APIError{Code: 429, Message: "Resource has been exhausted"}, &ErrRateLimit{}},
		{"overloaded", genai.APIError{Code: 503, Message: "The model is overloaded"}, &ErrProviderUnavailable{}},
		{"bad request", genai.APIError{Code: 400, Message: "Invalid JSON payload"}, &ErrProviderUnavailable{}},
		{"network", errors.New("dial tcp: no route to host"), &ErrProviderUnavailable{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapGeminiError(tt.err)
			switch tt.want.(type) {
			case *ErrAuthentication:
				var e *ErrAuthentication
				if !errors.As(got, &e) {
					t.Errorf("got %T, want *ErrAuthentication", got)
				}
			case *ErrRateLimit:
				var e *ErrRateLimit
				if !errors.As(got, &e) {
					t.Errorf("got %T, want *ErrRateLimit", got)
				}
			case *ErrProviderUnavailable:
				var e *ErrProviderUnavailable
				if !errors.As(got, &e) {
					t.Errorf("got %T, want *ErrProviderUnavailable", got)
				}
			}
		})
	}
}
