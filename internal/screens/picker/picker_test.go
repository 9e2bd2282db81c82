package picker

import (
	"strings"
	"testing"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/router"
	"github.com/taodethi/taodethi/internal/screen/screentest"
	"github.com/taodethi/taodethi/internal/screens/topics"
	"github.com/taodethi/taodethi/internal/selection"
)

func TestNew_PresetsFromSession(t *testing.T) {
	env := screentest.NewEnv(t, &screentest.Generator{})
	env.State.SetSubject(exam.SubjectPhysics)
	env.State.SetGrade("8")

	p := New(env)
	if p.subjects[p.subject] != exam.SubjectPhysics {
		t.Errorf("subject = %v, want %v", p.subjects[p.subject], exam.SubjectPhysics)
	}
	if p.grades[p.grade] != "8" {
		t.Errorf("grade = %q, want 8", p.grades[p.grade])
	}
}

func TestEnter_AppliesChoiceAndPreselectsFirstChapter(t *testing.T) {
	env := screentest.NewEnv(t, &screentest.Generator{})
	p := New(env)

	p.Update(screentest.Key("right"))
	p.Update(screentest.Key("down"))
	_, cmd := p.Update(screentest.Key("enter"))

	if env.State.Grade != "7" {
		t.Fatalf("grade = %q, want 7", env.State.Grade)
	}
	first, ok := env.Catalog.First(exam.SubjectMath, "7")
	if !ok {
		t.Fatal("no chapters for Toán 7")
	}
	if !env.State.Selection.Covers(first.ID, first.Lessons) {
		t.Errorf("first chapter %s not preselected", first.ID)
	}

	msg, ok := screentest.Run(cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", screentest.Run(cmd))
	}
	if _, ok := msg.Screen.(*topics.TopicsScreen); !ok {
		t.Errorf("pushed %T, want *topics.TopicsScreen", msg.Screen)
	}
}

func TestEnter_SubjectChangeResetsSelection(t *testing.T) {
	env := screentest.NewEnv(t, &screentest.Generator{})
	ch, _ := env.Catalog.First(exam.SubjectMath, "6")
	env.State.Selection = selection.ToggleLesson(env.State.Selection, ch.ID, ch.Lessons[1])

	p := New(env)
	p.Update(screentest.Key("down"))
	p.Update(screentest.Key("enter"))

	if env.State.Subject != exam.SubjectPhysics {
		t.Fatalf("subject = %v, want %v", env.State.Subject, exam.SubjectPhysics)
	}
	for _, id := range env.State.Selection.ChapterIDs() {
		if id == ch.ID {
			t.Errorf("selection still holds %s after subject change", id)
		}
	}
}

func TestEnter_SameChoiceKeepsSelection(t *testing.T) {
	env := screentest.NewEnv(t, &screentest.Generator{})
	ch, _ := env.Catalog.First(exam.SubjectMath, "6")
	env.State.Selection = selection.ToggleLesson(env.State.Selection, ch.ID, ch.Lessons[1])
	before := env.State.Selection

	p := New(env)
	p.Update(screentest.Key("enter"))

	if !env.State.Selection.Equal(before) {
		t.Error("selection changed although subject and grade did not")
	}
}

func TestMove_ClampsAtEnds(t *testing.T) {
	env := screentest.NewEnv(t, &screentest.Generator{})
	p := New(env)

	for range 10 {
		p.Update(screentest.Key("up"))
	}
	if p.subject != 0 {
		t.Errorf("subject index = %d, want 0", p.subject)
	}

	p.Update(screentest.Key("tab"))
	for range 20 {
		p.Update(screentest.Key("down"))
	}
	if p.grades[p.grade] != "12" {
		t.Errorf("grade = %q, want 12", p.grades[p.grade])
	}
}

func TestView_MarksGradesWithoutData(t *testing.T) {
	env := screentest.NewEnv(t, &screentest.Generator{})
	env.State.SetSubject(exam.SubjectChemistry)
	p := New(env)

	view := p.View(100, 40)
	if !strings.Contains(view, "chưa có dữ liệu") {
		t.Error("expected grades without chapters to be marked")
	}
	if !strings.Contains(view, "Hóa học") {
		t.Error("expected subject list in view")
	}
}
