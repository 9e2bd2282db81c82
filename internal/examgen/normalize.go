package examgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/llm"
)

// Normalize parses the model output into questions. The top-level value
// must be a JSON array; anything else fails the whole batch with
// exam.ErrMalformedResponse. Missing and repeated ids are replaced, and mcq/tf
// questions without options get exam.PlaceholderOptions. All other fields
// are kept as received.
func Normalize(raw []byte) ([]exam.Question, error) {
	return normalize(raw, uuid.NewString())
}

func normalize(raw []byte, batch string) ([]exam.Question, error) {
	text := llm.StripCodeFences(string(raw))
	if !strings.HasPrefix(text, "[") {
		return nil, fmt.Errorf("%w: top-level value is not an array", exam.ErrMalformedResponse)
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", exam.ErrMalformedResponse, err)
	}

	out := make([]exam.Question, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		var q exam.Question
		if err := json.Unmarshal(item, &q); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", exam.ErrMalformedResponse, i, err)
		}
		if q.ID == "" || seen[q.ID] {
			q.ID = fmt.Sprintf("q-%s-%d", batch, i)
		}
		seen[q.ID] = true
		if q.Type.HasOptions() && len(q.Options) == 0 {
			q.Options = exam.PlaceholderOptions()
		}
		out = append(out, q)
	}
	return out, nil
}
