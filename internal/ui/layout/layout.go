// Package layout draws the frame around every screen: a header with the
// learner's name and score, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below this width screens drop their sidebar.
	CompactWidthThreshold = 110
)

type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"터미널 창이 너무 작습니다.\n\n최소 %d x %d 이상으로 늘려 주세요.\n\n현재: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader puts the app name on the left, title centered and the
// learner on the right. user is empty before login.
func RenderHeader(title, user string, score int, width int) string {
	left := theme.Title.Render("  CodeMaster")
	center := theme.Body.Render(title)
	right := ""
	if user != "" {
		right = theme.Body.Render(user) + "   " +
			lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("★ %d점", score))
	}

	// Two columns of border and two of padding.
	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	line := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return bar.Width(width).Render(line)
}

func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = theme.Body.Bold(true).Render(h.Key) + " " + theme.Subtitle.Render(h.Description)
	}
	return bar.Width(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, body and footer, sizing the body to whatever
// height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
