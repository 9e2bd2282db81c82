// Package theme holds the colors and shared styles. The palette follows a
// marked exam paper: ink blue for structure, red pen for errors, green
// ticks for answers.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#3B82F6")
	Secondary = lipgloss.Color("#06B6D4")
	Accent    = lipgloss.Color("#EAB308")
	Success   = lipgloss.Color("#10B981")
	Error     = lipgloss.Color("#EF4444")
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#8B9BB4")
	BgCard    = lipgloss.Color("#172033")
	Border    = lipgloss.Color("#2E3A52")
)

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func bg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Background(c) }

var (
	Title          = fg(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle       = fg(TextDim).Align(lipgloss.Center)
	Body           = fg(Text)
	Hint           = fg(TextDim).Italic(true)
	SectionHeading = fg(Secondary).Bold(true)

	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Disabled   = fg(TextDim)
	Answer     = fg(Success).Bold(true)
	ErrorText  = fg(Error).Bold(true)
	Status     = fg(Accent)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2)
)

// Ratio bar segments, one per cognitive level.
var (
	RatioBiet    = bg(Success)
	RatioHieu    = bg(Accent)
	RatioVanDung = bg(Error)
	RatioEmpty   = bg(Border)
)

var (
	ButtonActive   = bg(Primary).Foreground(Text).Bold(true).Padding(0, 2)
	ButtonInactive = fg(TextDim).Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 2)

	TabActive   = bg(Primary).Foreground(Text).Bold(true).Padding(0, 1)
	TabInactive = fg(TextDim).Padding(0, 1)
)
