package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/taodethi/taodethi/internal/ui/theme"
)

// Choice is an inline selector cycled with left and right.
type Choice struct {
	Options  []string
	Selected int
}

// NewChoice creates a choice with the given options and initial index.
func NewChoice(options []string, selected int) Choice {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return Choice{Options: options, Selected: selected}
}

// Update cycles the selection on left/right (h/l).
func (c Choice) Update(msg tea.Msg) (Choice, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, false
	}

	switch kmsg.String() {
	case "left", "h":
		c.Selected = (c.Selected - 1 + len(c.Options)) % len(c.Options)
		return c, true
	case "right", "l", " ", "space":
		c.Selected = (c.Selected + 1) % len(c.Options)
		return c, true
	}
	return c, false
}

// Value returns the selected option.
func (c Choice) Value() string {
	if len(c.Options) == 0 {
		return ""
	}
	return c.Options[c.Selected]
}

// View renders every option, highlighting the selected one.
func (c Choice) View(focused bool) string {
	parts := make([]string, len(c.Options))
	for i, o := range c.Options {
		switch {
		case i == c.Selected && focused:
			parts[i] = theme.TabActive.Render(o)
		case i == c.Selected:
			parts[i] = theme.Selected.Render("[" + o + "]")
		default:
			parts[i] = theme.TabInactive.Render(o)
		}
	}
	return strings.Join(parts, " ")
}
