package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/taodethi/taodethi/internal/router"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/screens/apikey"
	"github.com/taodethi/taodethi/internal/screens/history"
	"github.com/taodethi/taodethi/internal/screens/paper"
	"github.com/taodethi/taodethi/internal/screens/picker"
	"github.com/taodethi/taodethi/internal/ui/components"
	"github.com/taodethi/taodethi/internal/ui/theme"
)

const (
	itemNew = iota
	itemPaper
	itemKey
	itemHistory
	itemQuit
)

// HomeScreen is the main menu.
type HomeScreen struct {
	env  *screen.Env
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd { return router.Push(build()) }
	}

	items := make([]components.MenuItem, itemQuit+1)
	items[itemNew] = components.MenuItem{
		Label:  "Tạo đề mới",
		Action: push(func() screen.Screen { return picker.New(env) }),
	}
	items[itemPaper] = components.MenuItem{
		Label:  "Đề hiện tại",
		Action: push(func() screen.Screen { return paper.New(env) }),
	}
	items[itemKey] = components.MenuItem{
		Label:  "API Key",
		Action: push(func() screen.Screen { return apikey.New(env) }),
	}
	items[itemHistory] = components.MenuItem{
		Label:  "Lịch sử gọi AI",
		Action: push(func() screen.Screen { return history.New(env) }),
	}
	items[itemQuit] = components.MenuItem{
		Label:  "Thoát",
		Action: func() tea.Cmd { return tea.Quit },
	}

	h.menu = components.NewMenu(items)
	h.refresh()
	return h
}

// refresh updates the item states from the session.
func (h *HomeScreen) refresh() {
	st := h.env.State
	paperItem := &h.menu.Items[itemPaper]
	paperItem.Disabled = st.Doc == nil
	paperItem.Hint = ""
	if st.Doc != nil {
		paperItem.Hint = h.env.Msg.Tp("QuestionCount", len(st.Doc.Questions))
	}

	keyItem := &h.menu.Items[itemKey]
	keyItem.Hint = ""
	if st.APIKey == "" {
		keyItem.Hint = h.env.Msg.T("KeyNotSet")
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.refresh()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	h.refresh()
	cw := components.ContentWidth(width)

	title := theme.Title.Width(cw).Render("TẠO ĐỀ KIỂM TRA") + "\n" +
		theme.Subtitle.Width(cw).Render("Toán · Vật lí · Hóa học · GDPT 2018")

	st := h.env.State
	status := fmt.Sprintf("%s lớp %s · %s",
		st.Subject.DisplayName(), st.Grade, h.env.Msg.Tp("LessonCount", st.Selection.LessonCount()))
	if st.Doc != nil {
		status += "\n" + theme.Hint.Render(st.Doc.Title)
	}

	sections := []string{
		title,
		components.Card(theme.Body.Render(status), cw),
		components.Card(h.menu.View(), cw),
	}
	content := strings.Join(sections, "\n\n")

	if height < lipgloss.Height(content)+2 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}
	return components.Frame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Trang chủ"
}
