package examgen

import (
	"errors"
	"fmt"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/llm"
)

// Classify maps a generation failure onto a user-facing kind. The result
// wraps both the kind and the cause, so errors.Is matches either.
// Authentication failures become exam.ErrInvalidCredential; everything
// else becomes exam.ErrServiceUnavailable.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, exam.ErrInvalidCredential) || errors.Is(err, exam.ErrServiceUnavailable) {
		return err
	}

	var authErr *llm.ErrAuthentication
	if errors.As(err, &authErr) {
		return fmt.Errorf("%w: %w", exam.ErrInvalidCredential, err)
	}
	return fmt.Errorf("%w: %w", exam.ErrServiceUnavailable, err)
}
