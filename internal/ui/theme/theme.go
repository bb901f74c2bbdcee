// Package theme holds the palette and the shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Dark background, high-contrast text for reading code.
var (
	Primary   = lipgloss.Color("#60A5FA")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#FBBF24")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Warning   = lipgloss.Color("#F97316")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	Title    = fg(Primary).Bold(true)
	Subtitle = fg(TextDim)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)
	// Code is used for problem examples and snippets.
	Code = fg(Secondary)

	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Correct    = fg(Success).Bold(true)
	Incorrect  = fg(Error).Bold(true)
	Notice     = fg(Accent)
)

var (
	Card        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1)
	FocusedCard = Card.BorderForeground(Primary)
)

// Quota gauge segments.
var (
	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressWarn   = lipgloss.NewStyle().Background(Warning)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)
)
