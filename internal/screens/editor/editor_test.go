package editor

import (
	"testing"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/screen/screentest"
)

func envWithDoc(t *testing.T) *screen.Env {
	t.Helper()
	env := screentest.NewEnv(t, &screentest.Generator{})
	cfg := &exam.Config{Subject: exam.SubjectMath, Grade: "6"}
	env.State.Doc = exam.NewDocument(cfg, "Đề kiểm tra: Số tự nhiên", screentest.Questions(), screentest.Now, "100")
	return env
}

func itemAt(env *screen.Env, pos int) exam.Item {
	for _, sec := range env.State.Doc.Sections() {
		for _, it := range sec.Items {
			if it.Pos == pos {
				return it
			}
		}
	}
	panic("no item")
}

func TestNew_FieldsFollowType(t *testing.T) {
	env := envWithDoc(t)

	tests := []struct {
		pos    int
		fields int
		points bool
	}{
		{0, 7, false}, // mcq: question, 4 options, answer, solution
		{1, 7, false}, // tf
		{2, 3, false}, // short
		{3, 4, true},  // essay adds points
	}
	for _, tt := range tests {
		e := New(env, itemAt(env, tt.pos))
		if got := e.fieldCount(); got != tt.fields {
			t.Errorf("pos %d: fieldCount = %d, want %d", tt.pos, got, tt.fields)
		}
		if (e.points != nil) != tt.points {
			t.Errorf("pos %d: points field = %v, want %v", tt.pos, e.points != nil, tt.points)
		}
	}
}

func TestNew_StripsOptionLabels(t *testing.T) {
	env := envWithDoc(t)
	e := New(env, itemAt(env, 0))

	if got := e.options[1].Value(); got != "2" {
		t.Errorf("option B = %q, want 2", got)
	}
	if e.answer.Model.Placeholder != "" {
		t.Error("mcq answer should have no placeholder")
	}

	tf := New(env, itemAt(env, 1))
	if tf.answer.Model.Placeholder != "Đúng - Sai - Sai - Đúng" {
		t.Errorf("tf placeholder = %q", tf.answer.Model.Placeholder)
	}
}

func TestSave_ReplacesQuestionInPlace(t *testing.T) {
	env := envWithDoc(t)
	e := New(env, itemAt(env, 0))
	e.Init()

	e.answer.SetValue(" C ")
	e.options[2].SetValue("Ba")
	_, cmd := e.Update(screentest.Key("ctrl+s"))
	if cmd == nil {
		t.Fatal("expected save to close the editor")
	}

	q := env.State.Doc.Questions[0]
	if q.Answer != "C" {
		t.Errorf("answer = %q, want C", q.Answer)
	}
	if q.Options[2] != "Ba" {
		t.Errorf("option C = %q, want Ba", q.Options[2])
	}
	if q.ID != "q1" {
		t.Errorf("id = %q, want q1", q.ID)
	}
	if len(env.State.Doc.Questions) != 4 {
		t.Errorf("questions = %d, want 4", len(env.State.Doc.Questions))
	}
}

func TestResult_Points(t *testing.T) {
	env := envWithDoc(t)

	e := New(env, itemAt(env, 3))
	if e.points.Value() != "2" {
		t.Fatalf("points prefill = %q, want 2", e.points.Value())
	}

	e.points.SetValue("1.25")
	q, err := e.Result()
	if err != nil {
		t.Fatal(err)
	}
	if q.Points == nil || *q.Points != 1.25 {
		t.Errorf("points = %v, want 1.25", q.Points)
	}

	e.points.SetValue("")
	q, err = e.Result()
	if err != nil {
		t.Fatal(err)
	}
	if q.Points != nil {
		t.Errorf("points = %v, want nil", *q.Points)
	}

	e.points.SetValue("1.2.3")
	if _, err := e.Result(); err == nil {
		t.Error("expected error for malformed points")
	}
}

func TestSave_InvalidPointsKeepsEditorOpen(t *testing.T) {
	env := envWithDoc(t)
	e := New(env, itemAt(env, 3))
	e.points.SetValue("abc")

	_, cmd := e.Update(screentest.Key("ctrl+s"))
	if cmd != nil {
		t.Error("expected editor to stay open")
	}
	if e.errMsg == "" {
		t.Error("expected error message")
	}
	if *env.State.Doc.Questions[3].Points != 2 {
		t.Error("document changed despite invalid input")
	}
}

func TestTab_CyclesFocus(t *testing.T) {
	env := envWithDoc(t)
	e := New(env, itemAt(env, 2))
	e.Init()

	e.Update(screentest.Key("tab"))
	if !e.answer.Focused() || e.question.Focused() {
		t.Error("expected answer focused after tab")
	}
	e.Update(screentest.Key("tab"))
	e.Update(screentest.Key("tab"))
	if !e.question.Focused() {
		t.Error("expected focus to wrap to the question")
	}
	e.Update(screentest.Key("shift+tab"))
	if !e.solution.Focused() {
		t.Error("expected shift+tab to wrap to the solution")
	}
}
