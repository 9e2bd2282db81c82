package exam

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Per-type upper bounds offered by the input surfaces.
const (
	MaxMCQ        = 40
	MaxTF         = 20
	MaxShort      = 20
	MaxEssay      = 10
	MaxQuickCount = 50
)

// Counts holds the number of questions requested per type.
type Counts struct {
	MCQ   int `json:"mcq" validate:"gte=0,lte=40"`
	TF    int `json:"tf" validate:"gte=0,lte=20"`
	Short int `json:"short" validate:"gte=0,lte=20"`
	Essay int `json:"essay" validate:"gte=0,lte=10"`
}

// QuickCounts routes n into exactly one type; every other type is zero.
func QuickCounts(t QuestionType, n int) Counts {
	var c Counts
	switch t {
	case TypeMCQ:
		c.MCQ = n
	case TypeTF:
		c.TF = n
	case TypeShort:
		c.Short = n
	case TypeEssay:
		c.Essay = n
	}
	return c
}

// Total returns the sum of all four counts.
func (c Counts) Total() int {
	return c.MCQ + c.TF + c.Short + c.Essay
}

// HasNegative reports whether any counter is below zero.
func (c Counts) HasNegative() bool {
	return c.MCQ < 0 || c.TF < 0 || c.Short < 0 || c.Essay < 0
}

// Of returns the count for a single type.
func (c Counts) Of(t QuestionType) int {
	switch t {
	case TypeMCQ:
		return c.MCQ
	case TypeTF:
		return c.TF
	case TypeShort:
		return c.Short
	case TypeEssay:
		return c.Essay
	}
	return 0
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// CheckBounds validates the counts against the per-type input limits.
func (c Counts) CheckBounds() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("question counts out of range: %w", err)
	}
	return nil
}

// CheckBounds validates the ratio percentages (each 0..100). The sum is
// checked by the configuration builder, not here.
func (p DifficultyPolicy) CheckBounds() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("difficulty ratio out of range: %w", err)
	}
	return nil
}

// CheckQuickCount validates the single quick-mode counter.
func CheckQuickCount(n int) error {
	if err := validate.Var(n, "gte=0,lte=50"); err != nil {
		return fmt.Errorf("quick count out of range: %w", err)
	}
	return nil
}
