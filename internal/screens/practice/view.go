package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/placement"
	sess "github.com/abhisek/codemaster/internal/session"
	"github.com/abhisek/codemaster/internal/ui/components"
	"github.com/abhisek/codemaster/internal/ui/layout"
	"github.com/abhisek/codemaster/internal/ui/theme"
)

const sidebarWidth = 36

func (p *PracticeScreen) View(width, height int) string {
	mainWidth := width
	var sidebar string
	if !layout.IsCompactWidth(width) {
		mainWidth = width - sidebarWidth - 1
		sidebar = p.renderSidebar(sidebarWidth, height)
	}

	var main string
	switch p.s.State.Phase {
	case sess.PhaseActive:
		main = p.renderWorkspace(mainWidth, height)
	case sess.PhaseGraded:
		main = p.renderGraded(mainWidth, height)
	default:
		main = p.renderIdle(mainWidth, height)
	}

	if sidebar == "" {
		return lipgloss.JoinVertical(lipgloss.Left, p.renderStatusLine(width), main)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, " ", sidebar)
}

func (p *PracticeScreen) renderWorkspace(width, height int) string {
	st := p.s.State
	prob := st.Problem
	inner := width - 4

	var b strings.Builder
	meta := fmt.Sprintf("%s · %s · %d점", placement.LevelName(st.Level()), st.Language(), prob.Points)
	if st.CurrentPoints != prob.Points {
		meta += fmt.Sprintf(" (현재 %d점)", st.CurrentPoints)
	}
	b.WriteString(theme.Subtitle.Render(meta))
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(prob.Title))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(inner).Render(prob.Description))
	if prob.ExampleInput != "" || prob.ExampleOutput != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Render("예시 입력  ") + theme.Code.Render(prob.ExampleInput))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("예시 출력  ") + theme.Code.Render(prob.ExampleOutput))
	}
	problem := theme.Card.Width(width).Render(b.String())

	status := p.renderInlineStatus(inner)

	// Card borders take two rows each.
	editorHeight := height - lipgloss.Height(problem) - lipgloss.Height(status) - 2
	if editorHeight < 3 {
		editorHeight = 3
	}
	p.editor.SetSize(inner, editorHeight)
	editor := theme.FocusedCard.Width(width).Render(p.editor.View())

	return lipgloss.JoinVertical(lipgloss.Left, problem, editor, status)
}

func (p *PracticeScreen) renderIdle(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("준비되셨나요?"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("Enter를 눌러 새 문제를 받으세요."))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Ctrl+O 로 언어와 레벨을 바꿀 수 있습니다."))
	if s := p.renderInlineStatus(width - 8); s != "" {
		b.WriteString("\n\n")
		b.WriteString(s)
	}
	card := theme.Card.Width(min(64, width-2)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (p *PracticeScreen) renderGraded(width, height int) string {
	res := p.s.State.Result

	var b strings.Builder
	b.WriteString(theme.Correct.Render("정답입니다!"))
	b.WriteString("\n\n")
	if res != nil {
		if res.AlreadySolved {
			b.WriteString(theme.Notice.Render(sess.MsgAlreadySolved))
		} else {
			b.WriteString(theme.Notice.Render(fmt.Sprintf("+%d점", res.PointsAwarded)))
		}
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Width(min(60, width-8)).Render(res.Feedback))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Enter: 계속  ·  Ctrl+N: 다음 문제"))

	card := theme.Card.BorderForeground(theme.Success).Width(min(68, width-2)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// renderInlineStatus shows the busy state, errors, notices and the latest
// incorrect verdict under the main panel.
func (p *PracticeScreen) renderInlineStatus(width int) string {
	var lines []string
	if p.busy != "" {
		lines = append(lines, theme.Hint.Render(p.busy))
	}
	if p.errMsg != "" {
		lines = append(lines, theme.Incorrect.Width(width).Render(p.errMsg))
	}
	if p.notice != "" {
		lines = append(lines, theme.Notice.Width(width).Render(p.notice))
	}
	if res := p.s.State.Result; res != nil && !res.Correct {
		verdict := "오답입니다."
		if res.OracleFailed {
			verdict = "채점에 실패했습니다."
		}
		if res.Penalty > 0 {
			verdict += fmt.Sprintf(" (-%d점)", res.Penalty)
		}
		lines = append(lines, theme.Incorrect.Render(verdict))
		if res.Feedback != "" {
			lines = append(lines, theme.Body.Width(width).Render(res.Feedback))
		}
	}
	return strings.Join(lines, "\n")
}

func (p *PracticeScreen) renderStatusLine(width int) string {
	st := p.s.State
	line := fmt.Sprintf("%s · %s · %d점", st.Language(), placement.LevelName(st.Level()), st.Account.TotalScore)
	if p.haveUsage {
		line += fmt.Sprintf(" · AI %d/%d", p.usage.DailyCount, p.usage.DailyLimit)
	}
	return theme.Subtitle.Width(width).Render(line)
}

func (p *PracticeScreen) renderSidebar(width, height int) string {
	st := p.s.State
	inner := width - 4

	var sections []string

	account := theme.Title.Render(st.UserName) + "\n" +
		fmt.Sprintf("언어  %s\n레벨  %s\n점수  %s",
			st.Language(), placement.LevelName(st.Level()),
			theme.Notice.Render(fmt.Sprintf("%d점", st.Account.TotalScore)))
	sections = append(sections, theme.Card.Width(width).Render(account))

	if p.haveUsage {
		u := p.usage
		usage := theme.Subtitle.Render("AI 사용량") + "\n" +
			components.NewGauge("오늘", u.DailyCount, u.DailyLimit, inner).View() + "\n" +
			components.NewGauge("분당", u.MinuteCount, u.MinuteLimit, inner).View()
		sections = append(sections, theme.Card.Width(width).Render(usage))
	}

	if st.Phase == sess.PhaseActive {
		var hint string
		if st.Hint != "" {
			hint = theme.Subtitle.Render("힌트") + "\n" +
				theme.Body.Width(inner).Render(st.Hint) + "\n" +
				theme.Hint.Render("Ctrl+X: 힌트 닫기")
		} else {
			hint = theme.Subtitle.Render("힌트") + "\n" +
				theme.Hint.Width(inner).Render(fmt.Sprintf("Ctrl+G: %d점을 사용해 힌트 보기", st.HintCost()))
		}
		sections = append(sections, theme.Card.Width(width).Render(hint))
	}

	return lipgloss.NewStyle().MaxHeight(height).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
