// Package screentest builds screen environments for tests.
package screentest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/taodethi/taodethi/internal/curriculum"
	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/examgen"
	"github.com/taodethi/taodethi/internal/i18n"
	"github.com/taodethi/taodethi/internal/logger"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/session"
	"github.com/taodethi/taodethi/internal/store"
)

// Now is the fixed clock of test environments.
var Now = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// Generator returns canned questions or an error.
type Generator struct {
	Questions []exam.Question
	Err       error
	Calls     int
}

func (g *Generator) Generate(_ context.Context, _ *exam.Config) ([]exam.Question, error) {
	g.Calls++
	return g.Questions, g.Err
}

var _ examgen.Generator = (*Generator)(nil)

// NewEnv returns an Env backed by a temporary database, the embedded
// curriculum and gen. The session starts at Toán lớp 6.
func NewEnv(t *testing.T, gen *Generator) *screen.Env {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return &screen.Env{
		State:   session.New(exam.SubjectMath, "6"),
		Catalog: curriculum.Default(),
		NewGenerator: func(string) (examgen.Generator, error) {
			return gen, nil
		},
		Keys:      store.NewKeyStore(st.SettingsRepo()),
		Events:    st.EventRepo(),
		EventLog:  true,
		Msg:       i18n.MustNew("vi"),
		Log:       logger.Nop(),
		ExportDir: t.TempDir(),
		Now:       func() time.Time { return Now },
	}
}

// Questions returns one question of each type.
func Questions() []exam.Question {
	two := 2.0
	return []exam.Question{
		{ID: "q1", Type: exam.TypeMCQ, Question: "$1+1$ bằng?", Options: []string{"A. 1", "B. 2", "C. 3", "D. 4"}, Answer: "B", Solution: "Cộng.", Chapter: "Số tự nhiên", Difficulty: string(exam.LevelBiet)},
		{ID: "q2", Type: exam.TypeTF, Question: "Xét các mệnh đề.", Options: []string{"a) 2 chẵn", "b) 3 chẵn", "c) 5 lẻ", "d) 0 lẻ"}, Answer: "Đúng - Sai - Đúng - Sai", Solution: "Định nghĩa.", Chapter: "Số tự nhiên", Difficulty: string(exam.LevelHieu)},
		{ID: "q3", Type: exam.TypeShort, Question: "Tính $12 \\cdot 3$.", Answer: "36", Solution: "Nhân.", Chapter: "Số tự nhiên", Difficulty: string(exam.LevelBiet)},
		{ID: "q4", Type: exam.TypeEssay, Question: "Chứng minh tổng hai số chẵn là số chẵn.", Answer: "Đúng", Solution: "2a+2b=2(a+b).", Chapter: "Số tự nhiên", Difficulty: string(exam.LevelVanDung), Points: &two},
	}
}

// Run executes cmd and returns its message, or nil for a nil command.
func Run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// Collect runs cmd and returns every message it produces, expanding
// batches.
func Collect(cmd tea.Cmd) []tea.Msg {
	msg := Run(cmd)
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// Find returns the first message of type T.
func Find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Key builds a key press for a printable key or a named special key.
func Key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	}
	if rest, ok := strings.CutPrefix(s, "ctrl+"); ok {
		return tea.KeyPressMsg{Code: []rune(rest)[0], Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}
