package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRetry_Sequences(t *testing.T) {
	var (
		down    = MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
		limited = MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}
		garbled = MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}
		cut     = MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`[{`)}}
		badKey  = MockResponse{Err: &ErrAuthentication{StatusCode: 401, Err: errors.New("bad key")}}
		ok      = JSONReply(`[{"id":"q1"}]`)
	)
	fast := RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 10 * time.Millisecond, Multiplier: 2}

	tests := []struct {
		name      string
		config    RetryConfig
		replies   []MockResponse
		wantCalls int
		wantErr   error
	}{
		{"first attempt succeeds", fast, []MockResponse{ok}, 1, nil},
		{"outage then success", fast, []MockResponse{down, ok}, 2, nil},
		{"rate limit then success", fast, []MockResponse{limited, ok}, 2, nil},
		{"every attempt fails", fast, []MockResponse{down, down, down, ok}, 3, &ErrProviderUnavailable{}},
		{"malformed reply retried once", fast, []MockResponse{garbled, garbled, ok}, 2, &ErrInvalidResponse{}},
		{"malformed then fixed", fast, []MockResponse{garbled, ok}, 2, nil},
		{"truncated exam is final", fast, []MockResponse{cut, ok}, 1, &ErrMaxTokensExceeded{}},
		{"rejected key is final", fast, []MockResponse{badKey, ok}, 1, &ErrAuthentication{}},
		{"default config is one attempt", DefaultConfig().Retry, []MockResponse{down, ok}, 1, &ErrProviderUnavailable{}},
		{"zero attempts still calls", RetryConfig{}, []MockResponse{ok}, 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.replies...)
			resp, err := WithRetry(mock, tt.config).Generate(context.Background(), Request{})

			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(resp.Content) != `[{"id":"q1"}]` {
					t.Fatalf("content = %s", resp.Content)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if fmt.Sprintf("%T", err) != fmt.Sprintf("%T", tt.wantErr) {
				t.Fatalf("error = %T (%v), want %T", err, err, tt.wantErr)
			}
		})
	}
}

func TestRetry_StopsWhenCanceled(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		JSONReply(`[]`),
	)
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, Multiplier: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), RetryConfig{})
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestRetry_WaitIsCapped(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: time.Second, MaxWait: 5 * time.Second, Multiplier: 2}}

	if d := r.wait(0, errors.New("net")); d < 800*time.Millisecond || d > 1200*time.Millisecond {
		t.Errorf("first wait = %v, want 1s ±20%%", d)
	}
	if d := r.wait(10, errors.New("net")); d > 5*time.Second {
		t.Errorf("late wait = %v, want at most MaxWait", d)
	}
	if d := r.wait(0, &ErrRateLimit{RetryAfter: time.Minute}); d != 5*time.Second {
		t.Errorf("Retry-After wait = %v, want capped to 5s", d)
	}
}

func TestRetryKind(t *testing.T) {
	tests := []struct {
		err  error
		want retryPolicy
	}{
		{&ErrRateLimit{}, always},
		{&ErrProviderUnavailable{}, always},
		{errors.New("connection reset"), always},
		{&ErrInvalidResponse{Err: errors.New("off schema")}, once},
		{&ErrAuthentication{StatusCode: 403}, never},
		{&ErrMaxTokensExceeded{}, never},
		{context.DeadlineExceeded, never},
	}
	for _, tt := range tests {
		if got := retryKind(tt.err); got != tt.want {
			t.Errorf("retryKind(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestTimeout_SetsDeadline(t *testing.T) {
	var deadline bool
	inner := providerFunc(func(ctx context.Context, req Request) (*Response, error) {
		_, deadline = ctx.Deadline()
		return &Response{Content: json.RawMessage(`[]`)}, nil
	})
	p := WithTimeout(inner, time.Second)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deadline {
		t.Fatal("expected context deadline")
	}
}

type providerFunc func(ctx context.Context, req Request) (*Response, error)

func (f providerFunc) Generate(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

func (f providerFunc) ModelID() string { return "func" }
