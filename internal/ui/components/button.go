package components

import "github.com/taodethi/taodethi/internal/ui/theme"

// Button renders a one-line action button. A disabled button is dimmed
// and the cursor marker shows only when focused.
func Button(label string, enabled, focused bool) string {
	marker := "  "
	if focused {
		marker = "▸ "
	}
	style := theme.ButtonInactive
	if enabled {
		style = theme.ButtonActive
	}
	return style.Render(marker + label + " ")
}
