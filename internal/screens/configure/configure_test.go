package configure

import (
	"errors"
	"strings"
	"testing"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/llm"
	"github.com/taodethi/taodethi/internal/router"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/screen/screentest"
	"github.com/taodethi/taodethi/internal/screens/apikey"
	"github.com/taodethi/taodethi/internal/screens/paper"
	"github.com/taodethi/taodethi/internal/selection"
)

func readyEnv(t *testing.T, gen *screentest.Generator) *screen.Env {
	t.Helper()
	env := screentest.NewEnv(t, gen)
	env.State.APIKey = "test-key"
	env.State.Selection = selection.WithFirstChapter(env.State.Selection, env.Catalog, env.State.Subject, env.State.Grade)
	return env
}

func focusOn(t *testing.T, c *ConfigureScreen, f fieldKind) {
	t.Helper()
	for i, k := range c.fields() {
		if k == f {
			c.focus = i
			return
		}
	}
	t.Fatalf("field %d not visible", f)
}

func TestFields_FollowModes(t *testing.T) {
	env := readyEnv(t, &screentest.Generator{})
	c := New(env)

	full := c.fields()
	if len(full) != 8 {
		t.Fatalf("full/fixed fields = %d, want 8", len(full))
	}

	env.State.Mode = exam.ModeQuick
	env.State.Difficulty = exam.DifficultyRatio
	quick := c.fields()
	want := []fieldKind{fieldMode, fieldQuickType, fieldQuickCount, fieldDifficulty, fieldBiet, fieldHieu, fieldGenerate}
	if len(quick) != len(want) {
		t.Fatalf("quick/ratio fields = %v, want %v", quick, want)
	}
	for i := range want {
		if quick[i] != want[i] {
			t.Errorf("field %d = %d, want %d", i, quick[i], want[i])
		}
	}
}

func TestAdjust_CountsClampToBounds(t *testing.T) {
	env := readyEnv(t, &screentest.Generator{})
	c := New(env)

	focusOn(t, c, fieldEssay)
	for range exam.MaxEssay + 5 {
		c.Update(screentest.Key("right"))
	}
	if env.State.Counts.Essay != exam.MaxEssay {
		t.Errorf("essay = %d, want %d", env.State.Counts.Essay, exam.MaxEssay)
	}

	focusOn(t, c, fieldMCQ)
	for range 10 {
		c.Update(screentest.Key("left"))
	}
	if env.State.Counts.MCQ != 0 {
		t.Errorf("mcq = %d, want 0", env.State.Counts.MCQ)
	}
}

func TestAdjust_RatioStepsByFive(t *testing.T) {
	env := readyEnv(t, &screentest.Generator{})
	env.State.Difficulty = exam.DifficultyRatio
	c := New(env)

	focusOn(t, c, fieldBiet)
	c.Update(screentest.Key("right"))
	if env.State.Biet != 35 {
		t.Errorf("biet = %d, want 35", env.State.Biet)
	}
}

func TestAdjust_ModeAndLevelCycle(t *testing.T) {
	env := readyEnv(t, &screentest.Generator{})
	c := New(env)

	c.Update(screentest.Key("space"))
	if env.State.Mode != exam.ModeQuick {
		t.Fatalf("mode = %q, want quick", env.State.Mode)
	}
	focusOn(t, c, fieldQuickType)
	c.Update(screentest.Key("left"))
	if env.State.QuickType != exam.TypeEssay {
		t.Errorf("quick type = %q, want essay after wrapping left", env.State.QuickType)
	}

	focusOn(t, c, fieldLevel)
	c.Update(screentest.Key("right"))
	if env.State.Level != exam.LevelVanDung {
		t.Errorf("level = %q, want %q", env.State.Level, exam.LevelVanDung)
	}
}

func TestGenerate_RatioExceededBlocks(t *testing.T) {
	gen := &screentest.Generator{}
	env := readyEnv(t, gen)
	env.State.Difficulty = exam.DifficultyRatio
	env.State.Biet, env.State.Hieu = 70, 40
	c := New(env)

	_, cmd := c.Update(screentest.Key("g"))
	if cmd != nil {
		t.Error("expected no command when the ratio is invalid")
	}
	if env.State.Busy() {
		t.Error("session must not be busy")
	}
	if c.errMsg != env.Msg.Error(exam.ErrInvalidRatio) {
		t.Errorf("errMsg = %q", c.errMsg)
	}
}

func TestGenerate_MissingKeyWinsOverBadRatio(t *testing.T) {
	env := readyEnv(t, &screentest.Generator{})
	env.State.APIKey = ""
	env.State.Difficulty = exam.DifficultyRatio
	env.State.Biet, env.State.Hieu = 80, 40
	c := New(env)

	_, cmd := c.Update(screentest.Key("g"))
	msg, ok := screentest.Run(cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg for the key dialog")
	}
	if _, ok := msg.Screen.(*apikey.APIKeyScreen); !ok {
		t.Errorf("pushed %T, want *apikey.APIKeyScreen", msg.Screen)
	}
	if c.errMsg != env.Msg.Error(exam.ErrMissingCredential) {
		t.Errorf("errMsg = %q", c.errMsg)
	}
}

func TestGenerate_MissingKeyOpensDialog(t *testing.T) {
	env := readyEnv(t, &screentest.Generator{})
	env.State.APIKey = ""
	c := New(env)

	_, cmd := c.Update(screentest.Key("g"))
	msg, ok := screentest.Run(cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*apikey.APIKeyScreen); !ok {
		t.Errorf("pushed %T, want *apikey.APIKeyScreen", msg.Screen)
	}
	if !errors.Is(env.State.LastErr, exam.ErrMissingCredential) {
		t.Errorf("LastErr = %v", env.State.LastErr)
	}
}

func TestGenerate_EmptySelectionReported(t *testing.T) {
	gen := &screentest.Generator{}
	env := readyEnv(t, gen)
	env.State.Selection = selection.Reset()
	c := New(env)

	c.Update(screentest.Key("g"))
	if !strings.Contains(c.View(100, 40), env.Msg.Error(exam.ErrEmptySelection)) {
		t.Error("expected empty-selection message in view")
	}
	if gen.Calls != 0 {
		t.Error("generator must not be called")
	}
}

func TestGenerate_SuccessPushesPaper(t *testing.T) {
	gen := &screentest.Generator{Questions: screentest.Questions()}
	env := readyEnv(t, gen)
	c := New(env)

	_, cmd := c.Update(screentest.Key("g"))
	if !env.State.Busy() {
		t.Fatal("expected session busy after starting generation")
	}

	// Keys are ignored while busy.
	c.Update(screentest.Key("g"))

	done, ok := screentest.Find[screen.GenerateDoneMsg](screentest.Collect(cmd))
	if !ok {
		t.Fatal("expected GenerateDoneMsg")
	}
	if gen.Calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.Calls)
	}

	finished := env.FinishGeneration(done)
	_, cmd = c.Update(finished)
	msg, ok := screentest.Run(cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*paper.PaperScreen); !ok {
		t.Errorf("pushed %T, want *paper.PaperScreen", msg.Screen)
	}
	if env.State.Doc == nil || len(env.State.Doc.Questions) != 4 {
		t.Fatal("expected document with 4 questions")
	}
}

func TestGenerate_RejectedKeyReopensDialog(t *testing.T) {
	gen := &screentest.Generator{Err: &llm.ErrAuthentication{Err: errors.New("401")}}
	env := readyEnv(t, gen)
	c := New(env)

	_, cmd := c.Update(screentest.Key("g"))
	done, _ := screentest.Find[screen.GenerateDoneMsg](screentest.Collect(cmd))
	_, cmd = c.Update(env.FinishGeneration(done))

	msg, ok := screentest.Run(cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*apikey.APIKeyScreen); !ok {
		t.Errorf("pushed %T, want *apikey.APIKeyScreen", msg.Screen)
	}
	if c.errMsg != env.Msg.T("ErrInvalidCredential") {
		t.Errorf("errMsg = %q", c.errMsg)
	}
	if env.State.Doc != nil {
		t.Error("failed generation must not create a document")
	}
}

func TestGenerate_ServiceFailureShowsMessage(t *testing.T) {
	gen := &screentest.Generator{Err: errors.New("boom")}
	env := readyEnv(t, gen)
	c := New(env)

	_, cmd := c.Update(screentest.Key("g"))
	done, _ := screentest.Find[screen.GenerateDoneMsg](screentest.Collect(cmd))
	_, cmd = c.Update(env.FinishGeneration(done))

	if cmd != nil {
		t.Error("expected no navigation on service failure")
	}
	if c.errMsg != env.Msg.T("ErrServiceUnavailable") {
		t.Errorf("errMsg = %q", c.errMsg)
	}
	if env.State.Busy() {
		t.Error("busy flag not cleared")
	}
}
