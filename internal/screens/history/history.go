package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/screen"
	"github.com/abhisek/codemaster/internal/screens/shared"
	"github.com/abhisek/codemaster/internal/store"
	"github.com/abhisek/codemaster/internal/ui/layout"
	"github.com/abhisek/codemaster/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Grades []store.GradeEventRecord
	Err    error
}

// HistoryScreen lists the learner's graded submissions, newest first.
type HistoryScreen struct {
	s        *shared.Session
	grades   []store.GradeEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(s *shared.Session) *HistoryScreen {
	return &HistoryScreen{
		s:        s,
		expanded: make(map[int]bool),
	}
}

func (h *HistoryScreen) Init() tea.Cmd {
	repo := h.s.Events
	user := h.s.State.UserName
	ctx := h.s.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		grades, err := repo.QueryGradeEvents(ctx, user, store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Grades: grades, Err: err}
	}
}

func (h *HistoryScreen) Title() string {
	return "제출 기록"
}

func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Feedback"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
		} else {
			h.grades = msg.Grades
		}
		h.loaded = true
		return h, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if h.selected > 0 {
				h.selected--
			}
		case "down", "j":
			if h.selected < len(h.grades)-1 {
				h.selected++
			}
		case "enter":
			h.expanded[h.selected] = !h.expanded[h.selected]
		}
	}
	return h, nil
}

func (h *HistoryScreen) View(width, height int) string {
	if h.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", h.errMsg))
	}
	if !h.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  기록을 불러오는 중...")
	}
	if len(h.grades) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  아직 제출 기록이 없습니다. 문제를 풀어보세요!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, g := range h.grades {
		prefix := "  "
		if i == h.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-6s L%d  %-22s %s",
			prefix, g.Timestamp.Format("01/02 15:04"), g.Language, g.Level, g.ProblemID, outcome(g))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == h.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if h.expanded[i] {
			fb := g.Feedback
			if fb == "" {
				fb = "(피드백 없음)"
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Hint.Width(min(80, width-8)).Render(fb)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func outcome(g store.GradeEventRecord) string {
	switch {
	case g.Correct && g.PointsAwarded > 0:
		return theme.Correct.Render(fmt.Sprintf("정답 +%d", g.PointsAwarded))
	case g.Correct:
		return theme.Correct.Render("정답 (중복)")
	case g.OracleFailed:
		return theme.Incorrect.Render(fmt.Sprintf("채점 실패 -%d", g.Penalty))
	default:
		return theme.Incorrect.Render(fmt.Sprintf("오답 -%d", g.Penalty))
	}
}
