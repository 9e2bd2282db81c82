package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/taodethi/taodethi/internal/router"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/store"
	"github.com/taodethi/taodethi/internal/ui/layout"
	"github.com/taodethi/taodethi/internal/ui/theme"
)

const recent = 50

type loadedMsg struct {
	events []store.LLMRequestEvent
	usage  []store.LLMUsage
	err    error
}

// HistoryScreen lists recent model calls, newest first, with per-model
// totals on top. Enter toggles the detail rows of the selected call.
type HistoryScreen struct {
	env    *screen.Env
	events []store.LLMRequestEvent
	usage  []store.LLMUsage
	cursor int
	open   map[int]bool
	loaded bool
	errMsg string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(env *screen.Env) *HistoryScreen {
	return &HistoryScreen{env: env, open: make(map[int]bool)}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.env.Events
	return func() tea.Msg {
		ctx := context.Background()
		events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{Limit: recent})
		if err != nil {
			return loadedMsg{err: err}
		}
		// Totals are a nicety; the list still shows without them.
		usage, _ := repo.LLMUsageByModel(ctx)
		return loadedMsg{events: events, usage: usage}
	}
}

func (s *HistoryScreen) Title() string { return "Lịch sử gọi AI" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Chi tiết"},
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.env.Log.Error("load llm history", "error", msg.err)
			s.errMsg = s.env.Msg.T("HistoryFailed")
			return s, nil
		}
		s.events, s.usage = msg.events, msg.usage
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Back
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = max(min(s.cursor+1, len(s.events)-1), 0)
		case "enter":
			s.open[s.cursor] = !s.open[s.cursor]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render("\n\n" + text)
	}
	switch {
	case s.errMsg != "":
		return center(theme.ErrorText, s.errMsg)
	case !s.loaded:
		return center(theme.Disabled, "Đang tải...")
	case len(s.events) == 0 && !s.env.EventLog:
		return center(theme.Hint, s.env.Msg.T("HistoryOff"))
	case len(s.events) == 0:
		return center(theme.Hint, "Chưa có lần gọi AI nào.")
	}

	var lines []string
	add := func(style lipgloss.Style, text string) {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text)))
	}

	lines = append(lines, "")
	for _, u := range s.usage {
		add(theme.Hint, fmt.Sprintf("%s: %d lần, %d token vào, %d token ra, %dms trung bình",
			u.Model, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs))
	}
	if len(s.usage) > 0 {
		lines = append(lines, "")
	}

	cursorLine := len(lines)
	for i, ev := range s.events {
		if i == s.cursor {
			cursorLine = len(lines)
		}
		add(s.rowStyle(i, ev), s.row(i, ev))
		if !s.open[i] {
			continue
		}
		add(theme.Hint, fmt.Sprintf("    #%d  %s", ev.ID, ev.Provider))
		if ev.ErrorMessage != "" {
			add(theme.ErrorText, "    "+ev.ErrorMessage)
		}
	}
	return strings.Join(scroll(lines, cursorLine, height), "\n")
}

func (s *HistoryScreen) row(i int, ev store.LLMRequestEvent) string {
	marker, mark := "  ", "✓"
	if i == s.cursor {
		marker = "> "
	}
	if !ev.Success {
		mark = "✗"
	}
	return fmt.Sprintf("%s%s  %s  %s  %-10s %5d/%-5d token  %6dms",
		marker, mark, ev.Timestamp.Local().Format("02/01 15:04"), ev.Model, ev.Purpose,
		ev.InputTokens, ev.OutputTokens, ev.LatencyMs)
}

func (s *HistoryScreen) rowStyle(i int, ev store.LLMRequestEvent) lipgloss.Style {
	switch {
	case i == s.cursor:
		return theme.Selected
	case !ev.Success:
		return lipgloss.NewStyle().Foreground(theme.Error)
	}
	return theme.Body
}

// scroll returns the window of at most height lines that keeps line
// focus visible.
func scroll(lines []string, focus, height int) []string {
	height = max(height, 1)
	start := max(focus-height+1, 0)
	return lines[start:min(start+height, len(lines))]
}
