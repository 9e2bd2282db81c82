package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/taodethi/taodethi/internal/ui/layout"
)

// Screen is one page of the app. The router owns the stack; the app draws
// the header and footer around View.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area only.
	View(width, height int) string

	// Title is the breadcrumb label. Empty hides the screen from the trail.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens with a focused text field.
// While CapturingInput is true the app does not treat Esc or letter keys
// as navigation.
type InputCapturer interface {
	CapturingInput() bool
}
