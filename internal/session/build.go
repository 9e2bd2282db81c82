package session

import (
	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/selection"
)

const (
	titlePrefix   = "Đề kiểm tra: "
	titleMore     = " (và các chương khác)"
	titleFallback = "Tổng hợp"
)

// Build validates the state and assembles a generation config and exam
// title. Checks run in order and stop at the first failure: empty
// selection, invalid ratio, empty question set. A negative counter counts
// as an empty question set.
func Build(s *State, lookup selection.Lookup) (*exam.Config, string, error) {
	if s.Selection.IsEmpty() {
		return nil, "", exam.ErrEmptySelection
	}

	policy := s.Policy()
	if policy.RatioExceeded() {
		return nil, "", exam.ErrInvalidRatio
	}

	counts := s.EffectiveCounts()
	if counts.HasNegative() || counts.Total() < 1 {
		return nil, "", exam.ErrEmptyQuestionSet
	}

	topics := selection.Topics(s.Selection, lookup)
	cfg := &exam.Config{
		Subject:    s.Subject,
		Grade:      s.Grade,
		Mode:       s.Mode,
		Topics:     topics,
		Difficulty: policy,
		Counts:     counts,
	}
	return cfg, Title(topics), nil
}

// Title names an exam after its first topic.
func Title(topics []exam.Topic) string {
	name := titleFallback
	if len(topics) > 0 && topics[0].ChapterName != "" {
		name = topics[0].ChapterName
	}
	title := titlePrefix + name
	if len(topics) > 1 {
		title += titleMore
	}
	return title
}
