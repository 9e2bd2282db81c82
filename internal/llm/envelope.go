package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// envelopeField holds a non-object root when a provider needs an object.
const envelopeField = "items"

// objectRootSchema returns a definition with an object root. Non-object
// definitions are wrapped as {"items": <definition>}; the second result
// reports whether wrapping happened.
func objectRootSchema(def map[string]any) (map[string]any, bool) {
	if t, _ := def["type"].(string); t == "object" {
		return def, false
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			envelopeField: def,
		},
		"required":             []any{envelopeField},
		"additionalProperties": false,
	}, true
}

// unwrapEnvelope extracts the wrapped value from {"items": ...}. A reply
// that is already the bare value is returned unchanged.
func unwrapEnvelope(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return raw, nil
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	inner, ok := env[envelopeField]
	if !ok {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("missing %q in wrapped response", envelopeField)}
	}
	return inner, nil
}

// StripCodeFences removes surrounding whitespace and a Markdown code fence
// (```json ... ``` or ``` ... ```) from model text.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
