// Package selection models the set of chosen (chapter, lessons) pairs.
//
// Every operation is a pure function that returns a new Selection; the
// caller owns applying the result. A chapter is present only while at least
// one of its lessons is selected.
package selection

import (
	"slices"

	"github.com/taodethi/taodethi/internal/curriculum"
	"github.com/taodethi/taodethi/internal/exam"
)

// Selection maps chapter ids to selected lesson names. Chapters keep the
// order in which they were first selected.
type Selection struct {
	order   []string
	lessons map[string][]string
}

// Empty returns a selection with no chapters.
func Empty() Selection {
	return Selection{}
}

// Reset is used on subject or grade change.
func Reset() Selection {
	return Empty()
}

// Len returns the number of selected chapters.
func (s Selection) Len() int { return len(s.order) }

// IsEmpty reports whether no lesson is selected.
func (s Selection) IsEmpty() bool { return len(s.order) == 0 }

// ChapterIDs returns the selected chapter ids in insertion order.
func (s Selection) ChapterIDs() []string {
	return slices.Clone(s.order)
}

// Lessons returns the lessons selected for a chapter.
func (s Selection) Lessons(chapterID string) []string {
	return slices.Clone(s.lessons[chapterID])
}

// Has reports whether a single lesson is selected.
func (s Selection) Has(chapterID, lesson string) bool {
	return slices.Contains(s.lessons[chapterID], lesson)
}

// Covers reports whether every lesson of the chapter is selected.
func (s Selection) Covers(chapterID string, allLessons []string) bool {
	return len(s.lessons[chapterID]) == len(allLessons) && len(allLessons) > 0
}

// Partial reports whether some but not all lessons of the chapter are
// selected.
func (s Selection) Partial(chapterID string, allLessons []string) bool {
	n := len(s.lessons[chapterID])
	return n > 0 && n < len(allLessons)
}

// LessonCount returns the total number of selected lessons.
func (s Selection) LessonCount() int {
	n := 0
	for _, id := range s.order {
		n += len(s.lessons[id])
	}
	return n
}

// Equal reports whether both selections hold the same lessons per chapter.
// Order is ignored.
func (s Selection) Equal(o Selection) bool {
	if len(s.order) != len(o.order) {
		return false
	}
	for id, ls := range s.lessons {
		other, ok := o.lessons[id]
		if !ok || len(other) != len(ls) {
			return false
		}
		for _, l := range ls {
			if !slices.Contains(other, l) {
				return false
			}
		}
	}
	return true
}

func (s Selection) clone() Selection {
	c := Selection{
		order:   slices.Clone(s.order),
		lessons: make(map[string][]string, len(s.lessons)),
	}
	for id, ls := range s.lessons {
		c.lessons[id] = slices.Clone(ls)
	}
	return c
}

// set stores lessons for a chapter, removing the key when empty.
func (s *Selection) set(chapterID string, lessons []string) {
	if len(lessons) == 0 {
		if _, ok := s.lessons[chapterID]; ok {
			delete(s.lessons, chapterID)
			s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == chapterID })
		}
		return
	}
	if _, ok := s.lessons[chapterID]; !ok {
		s.order = append(s.order, chapterID)
	}
	s.lessons[chapterID] = lessons
}

// ToggleChapter removes the chapter if all of its lessons are selected and
// otherwise selects all of them. From a partial selection two toggles go
// partial, full, removed.
func ToggleChapter(s Selection, chapterID string, allLessons []string) Selection {
	next := s.clone()
	if s.Covers(chapterID, allLessons) {
		next.set(chapterID, nil)
	} else {
		next.set(chapterID, slices.Clone(allLessons))
	}
	return next
}

// ToggleLesson adds or removes a single lesson.
func ToggleLesson(s Selection, chapterID, lesson string) Selection {
	next := s.clone()
	cur := next.lessons[chapterID]
	if slices.Contains(cur, lesson) {
		cur = slices.DeleteFunc(cur, func(l string) bool { return l == lesson })
	} else {
		cur = append(cur, lesson)
	}
	next.set(chapterID, cur)
	return next
}

// SelectAll fully selects every given chapter.
func SelectAll(s Selection, chapters []curriculum.Chapter) Selection {
	next := s.clone()
	for _, ch := range chapters {
		next.set(ch.ID, slices.Clone(ch.Lessons))
	}
	return next
}

// DeselectAll removes every given chapter.
func DeselectAll(s Selection, chapters []curriculum.Chapter) Selection {
	next := s.clone()
	for _, ch := range chapters {
		next.set(ch.ID, nil)
	}
	return next
}

// AllSelected reports whether every given chapter is fully selected.
func AllSelected(s Selection, chapters []curriculum.Chapter) bool {
	if len(chapters) == 0 {
		return false
	}
	for _, ch := range chapters {
		if !s.Covers(ch.ID, ch.Lessons) {
			return false
		}
	}
	return true
}

// WithFirstChapter fully selects the first chapter of the subject and grade
// when nothing is selected yet.
func WithFirstChapter(s Selection, cat *curriculum.Catalog, subject exam.Subject, grade string) Selection {
	if !s.IsEmpty() {
		return s
	}
	ch, ok := cat.First(subject, grade)
	if !ok {
		return s
	}
	return ToggleChapter(s, ch.ID, ch.Lessons)
}

// Lookup resolves a chapter id to its display name.
type Lookup interface {
	ChapterName(id string) string
}

// Topics converts the selection into the ordered topic list of an exam
// config. Unknown chapter ids map to an empty chapter name.
func Topics(s Selection, lookup Lookup) []exam.Topic {
	out := make([]exam.Topic, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, exam.Topic{
			ChapterName: lookup.ChapterName(id),
			Lessons:     slices.Clone(s.lessons[id]),
		})
	}
	return out
}
