package components

import (
	"fmt"
	"strings"

	"github.com/taodethi/taodethi/internal/ui/theme"
)

// RatioBar displays the Biết / Hiểu / Vận dụng split as one bar.
type RatioBar struct {
	Biet  int
	Hieu  int
	Width int
}

// View renders the bar followed by the three percentages. Shares above
// 100% are clipped in the bar; the labels show the stored values.
func (r RatioBar) View() string {
	width := max(r.Width, 10)

	biet := clampPct(r.Biet)
	hieu := clampPct(min(r.Hieu, 100-biet))
	van := 100 - biet - hieu

	nb := width * biet / 100
	nh := width * hieu / 100
	nv := width - nb - nh
	if van == 0 {
		nv = 0
	}
	rest := width - nb - nh - nv

	bar := theme.RatioBiet.Render(strings.Repeat(" ", nb)) +
		theme.RatioHieu.Render(strings.Repeat(" ", nh)) +
		theme.RatioVanDung.Render(strings.Repeat(" ", nv)) +
		theme.RatioEmpty.Render(strings.Repeat(" ", rest))

	label := fmt.Sprintf("  Biết %d%%  Hiểu %d%%  Vận dụng %d%%", r.Biet, r.Hieu, max(0, 100-r.Biet-r.Hieu))
	return bar + theme.Hint.Render(label)
}

func clampPct(p int) int {
	return min(max(p, 0), 100)
}
