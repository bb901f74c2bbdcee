package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/ui/theme"
)

// Gauge displays how much of a limit has been used.
type Gauge struct {
	Label string
	Used  int
	Limit int
	Width int
}

// NewGauge creates a new gauge.
func NewGauge(label string, used, limit, width int) Gauge {
	return Gauge{
		Label: label,
		Used:  used,
		Limit: limit,
		Width: width,
	}
}

// Fraction returns Used/Limit clamped to [0, 1].
func (g Gauge) Fraction() float64 {
	if g.Limit <= 0 {
		return 0
	}
	f := float64(g.Used) / float64(g.Limit)
	return min(1, max(0, f))
}

// View renders the label, the bar and the counts.
func (g Gauge) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(g.Label)
	counts := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf(" %d/%d", g.Used, g.Limit))

	barWidth := g.Width - lipgloss.Width(counts)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * g.Fraction())
	empty := barWidth - filled

	fill := theme.ProgressFilled
	if g.Limit > 0 && g.Used >= g.Limit {
		fill = theme.ProgressWarn
	}

	bar := fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	return label + "\n" + bar + counts
}
