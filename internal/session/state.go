package session

import (
	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/selection"
)

// Defaults for a fresh session.
const (
	DefaultBiet       = 30
	DefaultHieu       = 40
	DefaultQuickCount = 5
)

// DefaultCounts is the per-type breakdown of a fresh full-mode session.
var DefaultCounts = exam.Counts{MCQ: 4, TF: 2, Short: 2, Essay: 1}

// State is the user's in-progress configuration plus the current exam
// document. It is owned by a single goroutine (the TUI update loop or a
// CLI command) and is not safe for concurrent use.
type State struct {
	Subject   exam.Subject
	Grade     string
	Mode      exam.Mode
	Selection selection.Selection

	// Difficulty holds the active policy. The fixed level and the ratio
	// are both remembered so switching modes keeps the user's values.
	Difficulty exam.DifficultyMode
	Level      exam.Level
	Biet       int
	Hieu       int

	Counts     exam.Counts
	QuickType  exam.QuestionType
	QuickCount int

	// APIKey is the credential for the model provider. Empty means the
	// key-entry dialog must be shown before generating.
	APIKey string

	// Doc is the current exam document, nil until the first successful
	// generation.
	Doc *exam.Document

	// LastErr is the kind of the most recent failure, nil after success.
	LastErr error

	busy bool
}

// New returns a State with the default configuration for a subject and
// grade.
func New(subject exam.Subject, grade string) *State {
	return &State{
		Subject:    subject,
		Grade:      grade,
		Mode:       exam.ModeFull,
		Selection:  selection.Empty(),
		Difficulty: exam.DifficultyFixed,
		Level:      exam.LevelHieu,
		Biet:       DefaultBiet,
		Hieu:       DefaultHieu,
		Counts:     DefaultCounts,
		QuickType:  exam.TypeMCQ,
		QuickCount: DefaultQuickCount,
	}
}

// SetSubject changes the subject. A change clears the topic selection.
func (s *State) SetSubject(subject exam.Subject) {
	if s.Subject == subject {
		return
	}
	s.Subject = subject
	s.Selection = selection.Reset()
}

// SetGrade changes the grade. A change clears the topic selection.
func (s *State) SetGrade(grade string) {
	if s.Grade == grade {
		return
	}
	s.Grade = grade
	s.Selection = selection.Reset()
}

// Policy returns the difficulty policy for the active mode.
func (s *State) Policy() exam.DifficultyPolicy {
	if s.Difficulty == exam.DifficultyRatio {
		return exam.Ratio(s.Biet, s.Hieu)
	}
	return exam.Fixed(s.Level)
}

// EffectiveCounts returns the counts a request would use: the four
// counters in full mode, or the quick counter routed to the quick type.
func (s *State) EffectiveCounts() exam.Counts {
	if s.Mode == exam.ModeQuick {
		return exam.QuickCounts(s.QuickType, s.QuickCount)
	}
	return s.Counts
}

// Busy reports whether a generation request is in flight.
func (s *State) Busy() bool { return s.busy }

// CanGenerate reports whether the generate trigger should be enabled.
func (s *State) CanGenerate() bool {
	return !s.busy && !s.Policy().RatioExceeded()
}

// EditQuestion replaces the question at pos in the current document.
func (s *State) EditQuestion(pos int, q exam.Question) error {
	if s.Doc == nil {
		return exam.ErrQuestionPosition
	}
	doc, err := s.Doc.Replace(pos, q)
	if err != nil {
		return err
	}
	s.Doc = doc
	return nil
}
