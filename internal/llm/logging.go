package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taodethi/taodethi/internal/logger"
	"github.com/taodethi/taodethi/internal/store"
)

// LoggingProvider records each model call in the event log. It is only
// installed when the event log is enabled.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	log      *logger.Logger
}

// WithLogging wraps p. provider is the configured provider name stored
// with each event.
func WithLogging(p Provider, provider string, repo store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, provider: provider, events: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := PurposeFrom(ctx)
	if purpose == "" {
		purpose = unlabeled
	}

	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}

	log := l.log.With("provider", l.provider, "purpose", purpose, "latency_ms", ev.LatencyMs)
	if err != nil {
		ev.ErrorMessage = err.Error()
		ev.ResponseBody = rejectedReply(err)
		log.Warn("llm request failed", "model", ev.Model, "error", err)
	} else {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
		log.Info("llm request", "model", ev.Model, "input_tokens", ev.InputTokens,
			"output_tokens", ev.OutputTokens, "stop", resp.StopReason)
	}

	// A timed-out call is worth recording too.
	if logErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); logErr != nil {
		log.Warn("record llm event", "error", logErr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// rejectedReply returns the model output carried by a malformed or
// truncated reply error, so `llm view` can show what was rejected.
func rejectedReply(err error) string {
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		return string(inv.Content)
	}
	var mt *ErrMaxTokensExceeded
	if errors.As(err, &mt) {
		return string(mt.Content)
	}
	return ""
}

// describeRequest renders the request for `llm view`: the messages, then
// the system prompt and schema name. The schema definition is static and
// left out.
func describeRequest(req Request) string {
	var b strings.Builder
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	if req.Schema != nil {
		fmt.Fprintf(&b, "[schema] %s\n", req.Schema.Name)
	}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		fmt.Fprintf(&b, "[params] temperature=%g max_tokens=%d\n", req.Temperature, req.MaxTokens)
	}
	return b.String()
}
