package components

import (
	"strings"

	"github.com/taodethi/taodethi/internal/ui/theme"
)

// Tabs renders a horizontal tab strip.
type Tabs struct {
	Labels []string
	Active int
}

// Next moves to the next tab, wrapping around.
func (t *Tabs) Next() {
	if len(t.Labels) > 0 {
		t.Active = (t.Active + 1) % len(t.Labels)
	}
}

// Prev moves to the previous tab, wrapping around.
func (t *Tabs) Prev() {
	if len(t.Labels) > 0 {
		t.Active = (t.Active - 1 + len(t.Labels)) % len(t.Labels)
	}
}

// View renders the strip.
func (t Tabs) View() string {
	parts := make([]string, len(t.Labels))
	for i, l := range t.Labels {
		if i == t.Active {
			parts[i] = theme.TabActive.Render(l)
		} else {
			parts[i] = theme.TabInactive.Render(l)
		}
	}
	return strings.Join(parts, theme.Disabled.Render("│"))
}
