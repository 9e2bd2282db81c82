package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/taodethi/taodethi/internal/router"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/screens/home"
	"github.com/taodethi/taodethi/internal/screens/welcome"
	"github.com/taodethi/taodethi/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *screen.Env
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel that opens on the welcome splash.
func newAppModel(env *screen.Env) AppModel {
	splash := welcome.New(func() screen.Screen { return home.New(env) })
	return AppModel{
		env:    env,
		router: router.New(splash),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.GenerateDoneMsg:
		// Applied here so the outcome lands even if the user navigated
		// away from the screen that started the request.
		finished := m.env.FinishGeneration(msg)
		return m, m.router.Update(finished)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.capturing() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// capturing reports whether the active screen handles Esc itself.
func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	switch {
	case m.width == 0 || m.height == 0:
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
	default:
		header := layout.RenderHeader(m.router.Trail(), m.status(), m.width)
		footer := layout.RenderFooter(m.footerHints(m.router.Active()), m.width)
		body := m.router.View(m.width, layout.BodyHeight(header, footer, m.height))
		v.SetContent(layout.RenderFrame(header, body, footer, m.width, m.height))
	}
	return v
}

// status summarizes the session for the header.
func (m AppModel) status() string {
	st := m.env.State
	s := fmt.Sprintf("%s · Lớp %s", st.Subject.DisplayName(), st.Grade)
	switch {
	case st.Busy():
		s += " · đang tạo đề"
	case st.APIKey == "":
		s += " · chưa có key"
	}
	return s + "  "
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints := p.KeyHints()
		return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Thoát"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Quay lại"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "Enter", Description: "Chọn"},
		{Key: "Ctrl+C", Description: "Thoát"},
	}
}

// Run blocks until the user quits.
func Run(env *screen.Env) error {
	if _, err := tea.NewProgram(newAppModel(env)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
