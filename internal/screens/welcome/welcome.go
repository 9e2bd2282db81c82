package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/taodethi/taodethi/internal/router"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/ui/theme"
)

const frameInterval = 100 * time.Millisecond

// Animation frames: the paper is written row by row, then the banner and
// tagline appear, then the continue hint.
const (
	bannerFrame = 5
	lastFrame   = 15
)

var paperRows = []string{
	"┌───────────────┐",
	"│ ĐỀ KIỂM TRA   │",
	"│ ───────────── │",
	"│ Câu 1. ○ ○ ○  │",
	"│ Câu 2. ○ ○ ○  │",
	"│ Câu 3. ______ │",
	"└───────────────┘",
}

const bannerArt = `████████╗ █████╗  ██████╗     ██████╗ ███████╗
╚══██╔══╝██╔══██╗██╔═══██╗    ██╔══██╗██╔════╝
   ██║   ███████║██║   ██║    ██║  ██║█████╗
   ██║   ██╔══██║██║   ██║    ██║  ██║██╔══╝
   ██║   ██║  ██║╚██████╔╝    ██████╔╝███████╗
   ╚═╝   ╚═╝  ╚═╝ ╚═════╝     ╚═════╝ ╚══════╝`

type frameMsg struct{}

// WelcomeScreen is the splash shown at start. Any key replaces it with the
// home screen.
type WelcomeScreen struct {
	home  func() screen.Screen
	frame int
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New takes a constructor so the home screen is built only on leave.
func New(home func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{home: home}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.frame >= lastFrame {
			return w, nil
		}
		w.frame++
		return w, nextFrame()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		return w, router.Replace(w.home())
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	rows := paperRows[:min(w.frame+3, len(paperRows))]
	parts := []string{lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(rows, "\n"))}

	if w.frame >= bannerFrame {
		parts = append(parts, "",
			banner(width),
			"",
			theme.Body.Bold(true).Render("Soạn đề kiểm tra Toán, Vật lí, Hóa học theo chương trình GDPT 2018"))
	}
	if w.frame >= lastFrame {
		parts = append(parts, "", theme.Hint.Render("nhấn phím bất kỳ để tiếp tục"))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}

// banner falls back to spaced letters when the block art does not fit.
func banner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < lipgloss.Width(bannerArt)+4 {
		return style.Render("T Ạ O   Đ Ề")
	}
	return style.Render(bannerArt)
}
