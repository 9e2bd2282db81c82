package session

import (
	"errors"
	"testing"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/selection"
)

type names map[string]string

func (n names) ChapterName(id string) string { return n[id] }

var testLookup = names{
	"m6_c1": "Tập hợp các số tự nhiên",
	"m6_c2": "Số nguyên",
}

func stateWith(ids ...string) *State {
	s := New(exam.SubjectMath, "6")
	for _, id := range ids {
		s.Selection = selection.ToggleLesson(s.Selection, id, "Bài 1")
	}
	return s
}

func TestBuild_Defaults(t *testing.T) {
	s := stateWith("m6_c1")

	cfg, title, err := Build(s, testLookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TotalQuestions() != 9 {
		t.Errorf("TotalQuestions = %d, want 9", cfg.TotalQuestions())
	}
	if cfg.Difficulty.Mode != exam.DifficultyFixed || cfg.Difficulty.Level != exam.LevelHieu {
		t.Errorf("unexpected difficulty %+v", cfg.Difficulty)
	}
	if title != "Đề kiểm tra: Tập hợp các số tự nhiên" {
		t.Errorf("title = %q", title)
	}
	if len(cfg.Topics) != 1 || cfg.Topics[0].Lessons[0] != "Bài 1" {
		t.Errorf("unexpected topics %+v", cfg.Topics)
	}
}

func TestBuild_TitleMultipleChapters(t *testing.T) {
	s := stateWith("m6_c2", "m6_c1")

	_, title, err := Build(s, testLookup)
	if err != nil {
		t.Fatal(err)
	}
	if title != "Đề kiểm tra: Số nguyên (và các chương khác)" {
		t.Errorf("title = %q", title)
	}
}

func TestBuild_TitleFallback(t *testing.T) {
	s := stateWith("unknown")

	_, title, err := Build(s, testLookup)
	if err != nil {
		t.Fatal(err)
	}
	if title != "Đề kiểm tra: Tổng hợp" {
		t.Errorf("title = %q", title)
	}
}

func TestBuild_FailFastOrder(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *State)
		want  error
	}{
		{
			name: "empty selection wins over everything",
			setup: func(s *State) {
				s.Selection = selection.Empty()
				s.Difficulty = exam.DifficultyRatio
				s.Biet, s.Hieu = 80, 40
				s.Counts = exam.Counts{}
			},
			want: exam.ErrEmptySelection,
		},
		{
			name: "ratio before counts",
			setup: func(s *State) {
				s.Difficulty = exam.DifficultyRatio
				s.Biet, s.Hieu = 60, 50
				s.Counts = exam.Counts{}
			},
			want: exam.ErrInvalidRatio,
		},
		{
			name:  "empty counts",
			setup: func(s *State) { s.Counts = exam.Counts{} },
			want:  exam.ErrEmptyQuestionSet,
		},
		{
			name:  "negative counter with positive total",
			setup: func(s *State) { s.Counts = exam.Counts{MCQ: -3, TF: 4} },
			want:  exam.ErrEmptyQuestionSet,
		},
		{
			name: "quick mode negative",
			setup: func(s *State) {
				s.Mode = exam.ModeQuick
				s.QuickCount = -2
			},
			want: exam.ErrEmptyQuestionSet,
		},
		{
			name: "quick mode zero",
			setup: func(s *State) {
				s.Mode = exam.ModeQuick
				s.QuickCount = 0
			},
			want: exam.ErrEmptyQuestionSet,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stateWith("m6_c1")
			tt.setup(s)
			_, _, err := Build(s, testLookup)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuild_RatioAtBoundary(t *testing.T) {
	s := stateWith("m6_c1")
	s.Difficulty = exam.DifficultyRatio
	s.Biet, s.Hieu = 60, 40

	cfg, _, err := Build(s, testLookup)
	if err != nil {
		t.Fatalf("60+40 should be accepted: %v", err)
	}
	if cfg.Difficulty.VanDung() != 0 {
		t.Errorf("VanDung = %d, want 0", cfg.Difficulty.VanDung())
	}
}

func TestBuild_QuickModeRoutesCount(t *testing.T) {
	s := stateWith("m6_c1")
	s.Mode = exam.ModeQuick
	s.QuickType = exam.TypeShort
	s.QuickCount = 7

	cfg, _, err := Build(s, testLookup)
	if err != nil {
		t.Fatal(err)
	}
	want := exam.Counts{Short: 7}
	if cfg.Counts != want {
		t.Errorf("Counts = %+v, want %+v", cfg.Counts, want)
	}
}

func TestSetSubjectAndGradeResetSelection(t *testing.T) {
	s := stateWith("m6_c1")

	s.SetGrade("6")
	if s.Selection.IsEmpty() {
		t.Error("same grade should keep the selection")
	}
	s.SetGrade("7")
	if !s.Selection.IsEmpty() {
		t.Error("grade change should clear the selection")
	}

	s.Selection = selection.ToggleLesson(s.Selection, "m7_c1", "Bài 1")
	s.SetSubject(exam.SubjectPhysics)
	if !s.Selection.IsEmpty() {
		t.Error("subject change should clear the selection")
	}
}

func TestCanGenerate(t *testing.T) {
	s := stateWith("m6_c1")
	if !s.CanGenerate() {
		t.Error("expected CanGenerate with defaults")
	}

	s.Difficulty = exam.DifficultyRatio
	s.Biet, s.Hieu = 70, 31
	if s.CanGenerate() {
		t.Error("expected CanGenerate false for invalid ratio")
	}

	s.Difficulty = exam.DifficultyFixed
	if !s.CanGenerate() {
		t.Error("fixed mode ignores the stored ratio")
	}
}
