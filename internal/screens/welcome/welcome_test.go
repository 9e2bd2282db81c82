package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/taodethi/taodethi/internal/router"
	"github.com/taodethi/taodethi/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Trang chủ" }

func advance(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(frameMsg{})
	}
	return cmd
}

func TestSplashStages(t *testing.T) {
	w := New(func() screen.Screen { return &stubScreen{} })

	view := w.View(100, 30)
	if strings.Contains(view, "Câu 3") || strings.Contains(view, "GDPT 2018") {
		t.Fatalf("first frame should show only the top of the paper:\n%s", view)
	}

	advance(w, bannerFrame)
	view = w.View(100, 30)
	if !strings.Contains(view, "Câu 3") {
		t.Error("paper should be fully written by the banner frame")
	}
	if !strings.Contains(view, "GDPT 2018") {
		t.Error("tagline should be visible from the banner frame")
	}
	if strings.Contains(view, "nhấn phím") {
		t.Error("continue hint should wait for the last frame")
	}

	advance(w, lastFrame-bannerFrame)
	if !strings.Contains(w.View(100, 30), "nhấn phím") {
		t.Error("continue hint should be visible on the last frame")
	}
}

func TestFramesStopAtLast(t *testing.T) {
	w := New(func() screen.Screen { return &stubScreen{} })

	if cmd := advance(w, lastFrame); cmd == nil {
		t.Fatal("expected a tick before the last frame is reached")
	}
	if cmd := advance(w, 1); cmd != nil {
		t.Error("expected ticking to stop after the last frame")
	}
	if w.frame != lastFrame {
		t.Errorf("frame = %d, want %d", w.frame, lastFrame)
	}
}

func TestNarrowTerminalUsesCompactBanner(t *testing.T) {
	if got := banner(40); !strings.Contains(got, "T Ạ O") {
		t.Errorf("narrow banner = %q", got)
	}
	if got := banner(100); strings.Contains(got, "T Ạ O") {
		t.Error("wide terminals should get the block banner")
	}
}

func TestKeypressReplacesOnce(t *testing.T) {
	built := 0
	w := New(func() screen.Screen { built++; return &stubScreen{} })
	advance(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should leave the splash")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen == nil {
		t.Fatalf("expected ReplaceScreenMsg with a screen, got %#v", cmd())
	}

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if built != 1 {
		t.Errorf("home built %d times, want 1", built)
	}
}
