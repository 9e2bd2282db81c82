package llm

import "context"

type purposeKey struct{}

// unlabeled is logged for calls made without WithPurpose.
const unlabeled = "other"

// WithPurpose labels the model calls made with ctx, e.g. "exam-gen". The
// label is stored with each logged event and filters `llm list`.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "".
func PurposeFrom(ctx context.Context) string {
	p, _ := ctx.Value(purposeKey{}).(string)
	return p
}
