package examgen

import (
	"context"

	"github.com/taodethi/taodethi/internal/exam"
)

// Generator produces the question batch for an exam config.
type Generator interface {
	// Generate runs one generation attempt. Failures are classified into
	// exam.ErrInvalidCredential or exam.ErrServiceUnavailable.
	Generate(ctx context.Context, cfg *exam.Config) ([]exam.Question, error)
}
