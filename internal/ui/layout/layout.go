package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/taodethi/taodethi/internal/ui/theme"
)

// Exam papers are rendered in the content area, so anything narrower than
// a standard terminal wraps question text badly.
const (
	MinWidth  = 80
	MinHeight = 24
)

const (
	brand      = "  Tạo Đề"
	crumbSep   = " › "
	crumbTrunc = "…"
	hintGap    = "   "
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Cửa sổ quá nhỏ!\n\nVui lòng mở rộng tối thiểu\n%d x %d\n\nHiện tại: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// Breadcrumb joins the screen trail into one line of at most width cells.
// The current screen is kept; earlier screens are dropped from the left
// and replaced by an ellipsis.
func Breadcrumb(trail []string, width int) string {
	if len(trail) == 0 || width <= 0 {
		return ""
	}
	for i := range trail {
		s := strings.Join(trail[i:], crumbSep)
		if i > 0 {
			s = crumbTrunc + crumbSep + s
		}
		if runewidth.StringWidth(s) <= width {
			return s
		}
	}
	return runewidth.Truncate(trail[len(trail)-1], width, crumbTrunc)
}

// RenderHeader renders the header bar: brand on the left, the breadcrumb
// trail in the middle, session status on the right.
func RenderHeader(trail []string, status string, width int) string {
	innerWidth := max(width-4, 0)
	statusWidth := runewidth.StringWidth(status)
	if statusWidth > innerWidth/3 {
		status = runewidth.Truncate(status, innerWidth/3, crumbTrunc)
		statusWidth = runewidth.StringWidth(status)
	}
	brandWidth := runewidth.StringWidth(brand)
	crumbs := Breadcrumb(trail, innerWidth-brandWidth-statusWidth-2)

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(crumbs)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	crumbWidth := runewidth.StringWidth(crumbs)
	leftGap := max((innerWidth-crumbWidth)/2-brandWidth, 1)
	rightGap := max(innerWidth-brandWidth-leftGap-crumbWidth-statusWidth, 1)
	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return bar().Width(width).Render(content)
}

// FitHints returns the leading hints that fit on one footer line of the
// given width. The last hint, usually the quit key, is always kept.
func FitHints(hints []KeyHint, width int) []KeyHint {
	if len(hints) == 0 {
		return nil
	}
	last := hints[len(hints)-1]
	used := 2 + hintWidth(last)
	var fit []KeyHint
	for _, h := range hints[:len(hints)-1] {
		w := hintWidth(h) + len(hintGap)
		if used+w > width {
			break
		}
		used += w
		fit = append(fit, h)
	}
	return append(fit, last)
}

func hintWidth(h KeyHint) int {
	return runewidth.StringWidth(h.Key) + 1 + runewidth.StringWidth(h.Description)
}

// RenderFooter renders the footer with as many key hints as fit.
func RenderFooter(hints []KeyHint, width int) string {
	hints = FitHints(hints, max(width-4, 0))
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	return bar().Width(width).Render("  " + strings.Join(parts, hintGap))
}

// BodyHeight returns the rows left for content between header and footer.
func BodyHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// RenderFrame stacks header, content and footer, padding or clipping the
// content to BodyHeight.
func RenderFrame(header, content, footer string, width, height int) string {
	h := BodyHeight(header, footer, height)
	body := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(content)
	return header + "\n" + body + "\n" + footer
}

func bar() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}
