package exam

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

// Document is the result of one successful generation. Questions are kept
// in the order the model returned them.
type Document struct {
	ID        string     `json:"id"`
	Subject   Subject    `json:"subject"`
	Grade     string     `json:"grade"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NewCode returns a random 3-digit display code in 100..999.
func NewCode() string {
	return strconv.Itoa(100 + rand.IntN(900))
}

// NewDocument assembles a document from a config and its normalized
// questions. An empty code is replaced with NewCode().
func NewDocument(cfg *Config, title string, questions []Question, now time.Time, code string) *Document {
	if code == "" {
		code = NewCode()
	}
	return &Document{
		ID:        code,
		Subject:   cfg.Subject,
		Grade:     cfg.Grade,
		Title:     title,
		Questions: questions,
		CreatedAt: now,
	}
}

// Item is one question in the section view.
type Item struct {
	// Number is the 1-based display number, counted across sections in
	// canonical type order.
	Number int
	// Pos is the index of the question in Document.Questions.
	Pos      int
	Question Question
}

// Section groups the questions of one type.
type Section struct {
	Type  QuestionType
	Items []Item
}

// Sections partitions the questions by type in canonical order
// (mcq, tf, short, essay). Empty sections are omitted. The view is
// computed from the live list on every call.
func (d *Document) Sections() []Section {
	var out []Section
	n := 0
	for _, t := range AllTypes() {
		var items []Item
		for pos, q := range d.Questions {
			if q.Type != t {
				continue
			}
			n++
			items = append(items, Item{Number: n, Pos: pos, Question: q})
		}
		if len(items) > 0 {
			out = append(out, Section{Type: t, Items: items})
		}
	}
	return out
}

// Replace returns a copy of d with the question at pos replaced by q. The
// replaced question keeps its id when q has none.
func (d *Document) Replace(pos int, q Question) (*Document, error) {
	if pos < 0 || pos >= len(d.Questions) {
		return nil, fmt.Errorf("replace question %d of %d: %w", pos, len(d.Questions), ErrQuestionPosition)
	}
	if q.ID == "" {
		q.ID = d.Questions[pos].ID
	}
	next := *d
	next.Questions = make([]Question, len(d.Questions))
	copy(next.Questions, d.Questions)
	next.Questions[pos] = q
	return &next, nil
}

// CountByType tallies questions per known type. Questions of an unknown
// type are not counted.
func CountByType(questions []Question) Counts {
	var c Counts
	for _, q := range questions {
		switch q.Type {
		case TypeMCQ:
			c.MCQ++
		case TypeTF:
			c.TF++
		case TypeShort:
			c.Short++
		case TypeEssay:
			c.Essay++
		}
	}
	return c
}
