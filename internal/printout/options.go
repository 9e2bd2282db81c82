package printout

import (
	"regexp"
	"unicode/utf8"

	"github.com/taodethi/taodethi/internal/exam"
)

// Options controls what a rendered paper includes.
type Options struct {
	// Solutions appends the answer and worked solution to every question.
	Solutions bool
}

// Section headings, indexed by canonical type order.
var sectionHeadings = map[exam.QuestionType]string{
	exam.TypeMCQ:   "Phần I. Trắc nghiệm",
	exam.TypeTF:    "Phần II. Trắc nghiệm Đúng/Sai",
	exam.TypeShort: "Phần III. Trắc nghiệm trả lời ngắn",
	exam.TypeEssay: "Phần IV. Tự luận",
}

// sectionNotes are printed under a heading.
var sectionNotes = map[exam.QuestionType]string{
	exam.TypeShort: "* Học sinh ghi kết quả vào ô trống.",
}

// SectionHeading returns the printed heading for a question type.
func SectionHeading(t exam.QuestionType) string {
	return sectionHeadings[t]
}

// SectionNote returns the instruction line printed under a heading, if any.
func SectionNote(t exam.QuestionType) string {
	return sectionNotes[t]
}

// Footer closes every printed paper.
const Footer = "--- HẾT ---"

var reOptionPrefix = regexp.MustCompile(`^[A-Da-d][.):]\s*`)

// CleanOption strips a leading "A.", "b)" or "C:" label the model may have
// added to an option.
func CleanOption(s string) string {
	return reOptionPrefix.ReplaceAllString(s, "")
}

// OptionLabel returns the printed label of option i: "A." for mcq, "a)"
// for tf.
func OptionLabel(t exam.QuestionType, i int) string {
	if t == exam.TypeTF {
		return string(rune('a'+i)) + ")"
	}
	return string(rune('A'+i)) + "."
}

// OptionColumns picks how many options fit on one line: four short
// options share a row, medium ones go two per row, long ones one per row.
func OptionColumns(opts []string) int {
	longest := 0
	for _, o := range opts {
		longest = max(longest, utf8.RuneCountInString(CleanOption(o)))
	}
	switch {
	case len(opts) == 0:
		return 1
	case longest < 15:
		return 4
	case longest < 40:
		return 2
	default:
		return 1
	}
}

// PointsLabel formats essay points, e.g. "(1.5 điểm)". Empty when unset.
func PointsLabel(q exam.Question) string {
	if q.Points == nil || *q.Points == 0 {
		return ""
	}
	return "(" + formatPoints(*q.Points) + " điểm)"
}
