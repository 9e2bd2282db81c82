package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider re-sends a request after transient failures, waiting with
// exponential backoff between attempts. With the default single attempt
// it is a pass-through and the user regenerates instead.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	malformedSeen := false

	var err error
	for attempt := 0; ; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch retryKind(err) {
		case never:
			return nil, err
		case once:
			// A model that returns an off-schema exam twice is unlikely to
			// fix it on a third try.
			if malformedSeen {
				return nil, err
			}
			malformedSeen = true
		}
		if attempt+1 >= attempts {
			return nil, err
		}

		t := time.NewTimer(r.wait(attempt, err))
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

type retryPolicy int

const (
	always retryPolicy = iota
	once
	never
)

// retryKind classifies err. Rate limits, outages and network errors are
// transient. A malformed reply is retried once. Cancellation, a rejected
// key and a truncated reply are final.
func retryKind(err error) retryPolicy {
	var (
		auth    *ErrAuthentication
		maxTok  *ErrMaxTokensExceeded
		invalid *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return never
	case errors.As(err, &auth), errors.As(err, &maxTok):
		return never
	case errors.As(err, &invalid):
		return once
	}
	return always
}

// wait returns the pause before the next attempt: the server's Retry-After
// when given, else InitialWait*Multiplier^attempt with ±20% jitter. Both
// are capped at MaxWait.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	limit := r.config.MaxWait

	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		if limit > 0 {
			return min(rl.RetryAfter, limit)
		}
		return rl.RetryAfter
	}

	d := float64(r.config.InitialWait)
	for range attempt {
		d *= r.config.Multiplier
	}
	if limit > 0 {
		d = min(d, float64(limit))
	}
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}
