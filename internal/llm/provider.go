package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one model reply. Implementations validate the reply
// against Request.Schema before returning it, so callers decode Content
// without re-checking its shape.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single generation call. Exam generation sends one user
// message holding the rendered prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, selects the provider's structured output mode and
	// is checked locally against the reply.
	Schema *Schema

	// Zero values leave the provider defaults in place.
	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema for the reply. Name is kebab-case and doubles
// as the compile cache key, e.g. "exam-questions".
type Schema struct {
	Name        string
	Description string

	// Definition may have a list root; providers that need an object root
	// wrap it under "items".
	Definition map[string]any

	// Strict is forwarded to OpenAI-compatible APIs. It requires every
	// property to be listed as required.
	Strict bool
}

// Response is a validated reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the call, which may differ from the
	// configured alias.
	Model string

	// StopReason is one of "end", "max_tokens" or "error".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
