package topics

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/taodethi/taodethi/internal/curriculum"
	"github.com/taodethi/taodethi/internal/router"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/screens/configure"
	"github.com/taodethi/taodethi/internal/selection"
	"github.com/taodethi/taodethi/internal/ui/components"
	"github.com/taodethi/taodethi/internal/ui/layout"
	"github.com/taodethi/taodethi/internal/ui/theme"
)

type rowKind int

const (
	rowChapter rowKind = iota
	rowLesson
)

type row struct {
	kind    rowKind
	chapter *curriculum.Chapter
	lesson  string
}

// TopicsScreen selects chapters and lessons for the current subject and
// grade, one curriculum domain per tab.
type TopicsScreen struct {
	env          *screen.Env
	domains      []string
	tabs         components.Tabs
	chapters     []curriculum.Chapter
	rows         []row
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)

// New creates a TopicsScreen for the session's subject and grade.
func New(env *screen.Env) *TopicsScreen {
	st := env.State
	domains := env.Catalog.Domains(st.Subject, st.Grade)
	t := &TopicsScreen{
		env:     env,
		domains: domains,
		tabs:    components.Tabs{Labels: domains},
	}
	t.loadTab()
	return t
}

func (t *TopicsScreen) Init() tea.Cmd { return nil }

func (t *TopicsScreen) Title() string {
	return fmt.Sprintf("%s lớp %s", t.env.State.Subject.DisplayName(), t.env.State.Grade)
}

func (t *TopicsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "Space", Description: "Chọn/bỏ"},
		{Key: "Tab", Description: "Mạch kiến thức"},
		{Key: "A", Description: "Chọn tất cả"},
		{Key: "Enter", Description: "Cấu hình đề"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

// loadTab rebuilds the rows for the active domain. Every chapter row is
// followed by its lessons.
func (t *TopicsScreen) loadTab() {
	t.rows = nil
	t.chapters = nil
	t.cursor = 0
	t.scrollOffset = 0
	if len(t.domains) == 0 {
		return
	}

	st := t.env.State
	t.chapters = t.env.Catalog.InDomain(st.Subject, st.Grade, t.domains[t.tabs.Active])
	for i := range t.chapters {
		ch := &t.chapters[i]
		t.rows = append(t.rows, row{kind: rowChapter, chapter: ch})
		for _, l := range ch.Lessons {
			t.rows = append(t.rows, row{kind: rowLesson, chapter: ch, lesson: l})
		}
	}
}

func (t *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	switch kmsg.String() {
	case "up", "k":
		t.moveCursor(-1)
	case "down", "j":
		t.moveCursor(1)
	case "tab", "right", "l":
		if len(t.domains) > 1 {
			t.tabs.Next()
			t.loadTab()
		}
	case "shift+tab", "left", "h":
		if len(t.domains) > 1 {
			t.tabs.Prev()
			t.loadTab()
		}
	case "space", " ":
		t.toggle()
	case "a":
		t.toggleAll()
	case "enter", "c":
		return t, t.next()
	}
	return t, nil
}

func (t *TopicsScreen) moveCursor(delta int) {
	next := t.cursor + delta
	if next >= 0 && next < len(t.rows) {
		t.cursor = next
	}
}

func (t *TopicsScreen) toggle() {
	if len(t.rows) == 0 {
		return
	}
	st := t.env.State
	r := t.rows[t.cursor]
	switch r.kind {
	case rowChapter:
		st.Selection = selection.ToggleChapter(st.Selection, r.chapter.ID, r.chapter.Lessons)
	case rowLesson:
		st.Selection = selection.ToggleLesson(st.Selection, r.chapter.ID, r.lesson)
	}
}

// toggleAll selects every chapter of the active tab, or clears them when
// they are all selected already.
func (t *TopicsScreen) toggleAll() {
	st := t.env.State
	if selection.AllSelected(st.Selection, t.chapters) {
		st.Selection = selection.DeselectAll(st.Selection, t.chapters)
		return
	}
	st.Selection = selection.SelectAll(st.Selection, t.chapters)
}

func (t *TopicsScreen) next() tea.Cmd {
	return router.Push(configure.New(t.env))
}

func (t *TopicsScreen) View(width, height int) string {
	st := t.env.State
	if len(t.domains) == 0 {
		msg := theme.Hint.Render(fmt.Sprintf("Chưa có dữ liệu chương trình cho %s lớp %s.", st.Subject.DisplayName(), st.Grade))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	header := "  " + t.tabs.View()
	count := t.env.Msg.Tp("LessonCount", st.Selection.LessonCount())
	status := theme.Status.Render("  " + count)

	listHeight := max(height-4, 1)
	t.adjustScroll(listHeight)

	var lines []string
	for i := t.scrollOffset; i < len(t.rows) && len(lines) < listHeight; i++ {
		lines = append(lines, t.renderRow(t.rows[i], i == t.cursor, width))
	}

	return strings.Join([]string{header, "", strings.Join(lines, "\n"), "", status}, "\n")
}

// adjustScroll keeps the cursor inside the visible window.
func (t *TopicsScreen) adjustScroll(height int) {
	if t.cursor < t.scrollOffset {
		t.scrollOffset = t.cursor
	}
	if t.cursor >= t.scrollOffset+height {
		t.scrollOffset = t.cursor - height + 1
	}
}

func (t *TopicsScreen) renderRow(r row, selected bool, width int) string {
	sel := t.env.State.Selection

	var box, label, indent string
	style := theme.Unselected
	switch r.kind {
	case rowChapter:
		switch {
		case sel.Covers(r.chapter.ID, r.chapter.Lessons):
			box = "[x]"
		case sel.Partial(r.chapter.ID, r.chapter.Lessons):
			box = "[-]"
		default:
			box = "[ ]"
		}
		label = r.chapter.Name
		style = theme.SectionHeading
	case rowLesson:
		box = "[ ]"
		if sel.Has(r.chapter.ID, r.lesson) {
			box = "[x]"
		}
		label = r.lesson
		indent = "    "
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
		style = theme.Selected
	}

	maxLabel := max(width-len(indent)-10, 10)
	if len([]rune(label)) > maxLabel {
		label = string([]rune(label)[:maxLabel-1]) + "…"
	}
	return fmt.Sprintf("  %s%s%s %s", cursor, indent, box, style.Render(label))
}
