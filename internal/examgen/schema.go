package examgen

import "github.com/taodethi/taodethi/internal/llm"

// ExamSchema defines the JSON schema for exam generation responses: an
// array of question objects.
var ExamSchema = &llm.Schema{
	Name:        "exam-questions",
	Description: "A list of exam questions with answers and worked solutions",
	Definition: map[string]any{
		"type":  "array",
		"items": questionSchema,
	},
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type": "string",
		},
		"type": map[string]any{
			"type": "string",
			"enum": []any{"mcq", "tf", "short", "essay"},
		},
		"chapter": map[string]any{
			"type": "string",
		},
		"lesson": map[string]any{
			"type": "string",
		},
		"difficulty": map[string]any{
			"type": "string",
			"enum": []any{"Biết", "Hiểu", "Vận dụng"},
		},
		"question": map[string]any{
			"type": "string",
		},
		"options": map[string]any{
			"type":        []any{"array", "null"},
			"items":       map[string]any{"type": "string"},
			"description": "For 'mcq': 4 options A-D. For 'tf': 4 statements a-d.",
		},
		"answer": map[string]any{
			"type":        "string",
			"description": "For 'tf': Sequence like 'Đúng-Sai-Đúng-Sai'.",
		},
		"solution": map[string]any{
			"type":        "string",
			"description": "Detailed step-by-step solution.",
		},
		"points": map[string]any{
			"type": []any{"number", "null"},
		},
	},
	"required": []any{"type", "question", "answer", "solution", "chapter", "difficulty"},
}
