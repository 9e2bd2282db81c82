package examgen

import (
	"fmt"
	"strings"

	"github.com/taodethi/taodethi/internal/exam"
)

// Check inspects a generated batch against the config that produced it.
// Implementations should be stateless and safe for concurrent use.
type Check interface {
	// Name returns a short identifier for logging, e.g. "count".
	Name() string

	// Check returns human-readable findings. An empty result means the
	// batch looks as requested.
	Check(cfg *exam.Config, questions []exam.Question) []string
}

// CountCheck compares the per-type question counts with the request.
type CountCheck struct{}

func (c *CountCheck) Name() string { return "count" }

func (c *CountCheck) Check(cfg *exam.Config, questions []exam.Question) []string {
	got := exam.CountByType(questions)

	var findings []string
	for _, t := range exam.AllTypes() {
		if want, n := cfg.Counts.Of(t), got.Of(t); n != want {
			findings = append(findings, fmt.Sprintf("%s: requested %d, received %d", t, want, n))
		}
	}
	unknown := make(map[exam.QuestionType]int)
	for _, q := range questions {
		if !q.Type.Valid() {
			unknown[q.Type]++
		}
	}
	for t, n := range unknown {
		findings = append(findings, fmt.Sprintf("unknown type %q: %d questions", t, n))
	}
	return findings
}

// ChapterCheck flags questions whose chapter is not one of the selected
// chapters.
type ChapterCheck struct{}

func (c *ChapterCheck) Name() string { return "chapter" }

func (c *ChapterCheck) Check(cfg *exam.Config, questions []exam.Question) []string {
	known := make(map[string]bool, len(cfg.Topics))
	for _, t := range cfg.Topics {
		known[normalizeChapter(t.ChapterName)] = true
	}

	var findings []string
	for i, q := range questions {
		if !known[normalizeChapter(q.Chapter)] {
			findings = append(findings, fmt.Sprintf("question %d: chapter %q was not selected", i+1, q.Chapter))
		}
	}
	return findings
}

func normalizeChapter(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
