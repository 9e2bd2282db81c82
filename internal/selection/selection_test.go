package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taodethi/taodethi/internal/curriculum"
	"github.com/taodethi/taodethi/internal/exam"
)

var chapterA = curriculum.Chapter{ID: "a", Name: "Chương A", Lessons: []string{"a1", "a2", "a3"}}
var chapterB = curriculum.Chapter{ID: "b", Name: "Chương B", Lessons: []string{"b1", "b2"}}

type names map[string]string

func (n names) ChapterName(id string) string { return n[id] }

func TestToggleChapterSelfInverse(t *testing.T) {
	tests := []struct {
		name  string
		start Selection
	}{
		{"from empty", Empty()},
		{"from full", ToggleChapter(Empty(), chapterA.ID, chapterA.Lessons)},
		{"other chapter present", ToggleLesson(Empty(), chapterB.ID, "b1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := ToggleChapter(tt.start, chapterA.ID, chapterA.Lessons)
			twice := ToggleChapter(once, chapterA.ID, chapterA.Lessons)
			assert.True(t, twice.Equal(tt.start), "two toggles should restore the prior state")
			assert.False(t, once.Equal(tt.start))
		})
	}
}

func TestToggleChapterFromPartial(t *testing.T) {
	partial := ToggleLesson(Empty(), chapterA.ID, "a2")
	require.True(t, partial.Partial(chapterA.ID, chapterA.Lessons))

	full := ToggleChapter(partial, chapterA.ID, chapterA.Lessons)
	assert.True(t, full.Covers(chapterA.ID, chapterA.Lessons))

	removed := ToggleChapter(full, chapterA.ID, chapterA.Lessons)
	assert.True(t, removed.IsEmpty())
	assert.False(t, removed.Equal(partial), "partial state is not restored")
}

func TestToggleLessonRemovesEmptyChapter(t *testing.T) {
	s := ToggleLesson(Empty(), chapterA.ID, "a1")
	assert.Equal(t, []string{"a"}, s.ChapterIDs())
	assert.True(t, s.Has("a", "a1"))

	s = ToggleLesson(s, chapterA.ID, "a1")
	assert.True(t, s.IsEmpty())
	assert.Empty(t, s.ChapterIDs())
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	s := ToggleLesson(Empty(), chapterA.ID, "a1")
	_ = ToggleLesson(s, chapterA.ID, "a2")
	_ = ToggleChapter(s, chapterA.ID, chapterA.Lessons)
	_ = DeselectAll(s, []curriculum.Chapter{chapterA})
	assert.Equal(t, []string{"a1"}, s.Lessons("a"))
}

func TestSelectAllDeselectAll(t *testing.T) {
	chapters := []curriculum.Chapter{chapterA, chapterB}
	s := SelectAll(ToggleLesson(Empty(), chapterA.ID, "a3"), chapters)
	assert.True(t, AllSelected(s, chapters))
	assert.Equal(t, 5, s.LessonCount())

	s = DeselectAll(s, []curriculum.Chapter{chapterB})
	assert.Equal(t, []string{"a"}, s.ChapterIDs())
	assert.False(t, AllSelected(s, chapters))

	s = DeselectAll(s, chapters)
	assert.True(t, s.IsEmpty())
}

func TestTopicsInsertionOrder(t *testing.T) {
	s := ToggleChapter(Empty(), chapterB.ID, chapterB.Lessons)
	s = ToggleLesson(s, chapterA.ID, "a2")
	s = ToggleLesson(s, "ghost", "x")

	got := Topics(s, names{"a": "Chương A", "b": "Chương B"})
	want := []exam.Topic{
		{ChapterName: "Chương B", Lessons: []string{"b1", "b2"}},
		{ChapterName: "Chương A", Lessons: []string{"a2"}},
		{ChapterName: "", Lessons: []string{"x"}},
	}
	assert.Equal(t, want, got)
}

func TestWithFirstChapter(t *testing.T) {
	cat := curriculum.Default()
	s := WithFirstChapter(Empty(), cat, exam.SubjectMath, "6")
	first, _ := cat.First(exam.SubjectMath, "6")
	require.Equal(t, []string{first.ID}, s.ChapterIDs())
	assert.True(t, s.Covers(first.ID, first.Lessons))

	// An existing selection is left alone.
	kept := ToggleLesson(Empty(), "x", "y")
	assert.True(t, WithFirstChapter(kept, cat, exam.SubjectMath, "6").Equal(kept))
}
