package examgen

import "github.com/taodethi/taodethi/internal/logger"

// Config controls exam generation behavior.
type Config struct {
	// Temperature for LLM generation.
	Temperature float64

	// MaxTokens for the LLM response. Zero leaves the provider default.
	MaxTokens int

	// Checks run against each generated batch. Findings are logged and
	// never fail the batch.
	Checks []Check

	// Logger receives check findings. Nil discards them.
	Logger *logger.Logger
}

// DefaultConfig returns the default generation config.
func DefaultConfig() Config {
	return Config{
		Temperature: 0.8,
		Checks: []Check{
			&CountCheck{},
			&ChapterCheck{},
		},
	}
}
