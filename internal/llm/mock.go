package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// errNoReply is returned once the mock has used up its replies.
var errNoReply = errors.New("mock: no reply queued")

// MockResponse is one queued reply of a MockProvider. A non-nil Err is
// returned instead of Content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// JSONReply queues a literal JSON reply, e.g. a question list.
func JSONReply(s string) MockResponse {
	return MockResponse{Content: json.RawMessage(s)}
}

// MockProvider backs the "mock" provider setting and tests. Replies are
// served in order and every request is kept in Calls. An exhausted queue
// behaves like an unreachable service.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockResponse
	Calls   []Request
}

func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{replies: replies}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.replies) == 0 {
		return nil, &ErrProviderUnavailable{Err: errNoReply}
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	return &Response{Content: r.Content, Usage: r.Usage, Model: "mock", StopReason: "end"}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another reply.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastPrompt returns the user message of the most recent call, or "" when
// nothing was sent.
func (m *MockProvider) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return ""
	}
	msgs := m.Calls[len(m.Calls)-1].Messages
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleUser {
			return msgs[i].Content
		}
	}
	return ""
}
