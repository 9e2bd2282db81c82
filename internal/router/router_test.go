package router

import (
	"slices"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/taodethi/taodethi/internal/screen"
)

// page is a screen that records what the router did to it.
type page struct {
	title  string
	inits  int
	keys   []string
	onInit tea.Cmd
}

func (p *page) Init() tea.Cmd {
	p.inits++
	return p.onInit
}

func (p *page) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		p.keys = append(p.keys, k.String())
	}
	return p, nil
}

func (p *page) View(int, int) string { return "view:" + p.title }
func (p *page) Title() string        { return p.title }

func TestRouter_ExamFlow(t *testing.T) {
	splash := &page{}
	r := New(splash)

	home := &page{title: "Trang chủ"}
	r.Update(ReplaceScreenMsg{Screen: home})
	if r.Depth() != 1 || r.Active() != home || home.inits != 1 {
		t.Fatalf("splash should be replaced by home, depth %d", r.Depth())
	}

	topics := &page{title: "Toán lớp 6"}
	configure := &page{title: "Cấu hình đề"}
	paper := &page{title: "Đề kiểm tra: Số nguyên"}
	for _, s := range []*page{topics, configure, paper} {
		r.Update(PushScreenMsg{Screen: s})
	}
	if r.Depth() != 4 {
		t.Fatalf("depth = %d, want 4", r.Depth())
	}
	want := []string{"Trang chủ", "Toán lớp 6", "Cấu hình đề", "Đề kiểm tra: Số nguyên"}
	if got := r.Trail(); !slices.Equal(got, want) {
		t.Errorf("Trail() = %v, want %v", got, want)
	}
	if got := r.View(80, 24); got != "view:Đề kiểm tra: Số nguyên" {
		t.Errorf("View() = %q", got)
	}

	// Back to configure to regenerate.
	r.Update(PopScreenMsg{})
	if r.Active() != configure {
		t.Fatalf("active = %q, want configure", r.Active().Title())
	}
	if configure.inits != 1 {
		t.Error("pop must not re-run Init on the uncovered screen")
	}
}

func TestRouter_PopStopsAtRoot(t *testing.T) {
	home := &page{title: "Trang chủ"}
	r := New(home)
	if cmd := r.Pop(); cmd != nil {
		t.Error("expected no command")
	}
	if r.Depth() != 1 || r.Active() != home {
		t.Error("root screen must stay")
	}
}

func TestRouter_ForwardsToActiveOnly(t *testing.T) {
	home := &page{title: "Trang chủ"}
	dialog := &page{title: "API Key"}
	r := New(home)
	r.Push(dialog)

	r.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if len(dialog.keys) != 1 || len(home.keys) != 0 {
		t.Errorf("dialog keys %v, home keys %v", dialog.keys, home.keys)
	}
}

func TestRouter_InitCmdIsReturned(t *testing.T) {
	tick := func() tea.Msg { return "tick" }
	r := New(&page{title: "Trang chủ"})

	if cmd := r.Update(PushScreenMsg{Screen: &page{title: "Cấu hình đề", onInit: tick}}); cmd == nil {
		t.Fatal("push should return the screen's Init command")
	}
	if cmd := r.Update(ReplaceScreenMsg{Screen: &page{title: "Đề", onInit: tick}}); cmd == nil || cmd() != "tick" {
		t.Fatal("replace should return the screen's Init command")
	}
	if r.Depth() != 2 {
		t.Errorf("replace must keep depth, got %d", r.Depth())
	}
}

func TestNavigationCommands(t *testing.T) {
	home := &page{title: "Trang chủ"}
	r := New(home)

	paper := &page{title: "Đề"}
	r.Update(Push(paper)())
	if r.Active() != paper || paper.inits != 1 {
		t.Fatalf("Push should open and init the screen")
	}

	editor := &page{title: "Sửa câu"}
	r.Update(Replace(editor)())
	if r.Depth() != 2 || r.Active() != editor {
		t.Fatalf("Replace should swap the top screen, depth %d", r.Depth())
	}

	r.Update(Back())
	if r.Active() != home {
		t.Fatalf("Back should return to home, active %q", r.Active().Title())
	}
}
