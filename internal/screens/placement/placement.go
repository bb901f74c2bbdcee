package placement

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/problemgen"
	"github.com/abhisek/codemaster/internal/screen"
	"github.com/abhisek/codemaster/internal/screens/shared"
	sess "github.com/abhisek/codemaster/internal/session"
	"github.com/abhisek/codemaster/internal/ui/components"
	"github.com/abhisek/codemaster/internal/ui/layout"
	"github.com/abhisek/codemaster/internal/ui/theme"
)

const (
	opStart  = "placement.start"
	opCancel = "placement.cancel"
	opSubmit = "placement.submit"
	opLogout = "logout"
)

// PlacementScreen runs the skill test: pick a language, answer every
// question, get a level.
type PlacementScreen struct {
	s       *shared.Session
	langs   components.Menu
	current components.MultiChoice
	index   int
	answers []string
	busy    bool
	errMsg  string
}

var _ screen.Screen = (*PlacementScreen)(nil)
var _ screen.KeyHintProvider = (*PlacementScreen)(nil)

// New creates a PlacementScreen.
func New(s *shared.Session) *PlacementScreen {
	p := &PlacementScreen{s: s}

	items := make([]components.MenuItem, 0, len(problemgen.Languages))
	for _, lang := range problemgen.Languages {
		items = append(items, components.MenuItem{
			Label:  string(lang),
			Action: func() tea.Cmd { return p.start(lang) },
		})
	}
	p.langs = components.NewMenu(items)
	return p
}

func (p *PlacementScreen) Init() tea.Cmd {
	if p.s.State.Phase == sess.PhasePlacement {
		p.beginQuestions()
	}
	return nil
}

func (p *PlacementScreen) Title() string {
	return "실력 테스트"
}

func (p *PlacementScreen) KeyHints() []layout.KeyHint {
	if p.testing() {
		return []layout.KeyHint{
			{Key: "↑↓/1-9", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Cancel test"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start test"},
		{Key: "Ctrl+L", Description: "Logout"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (p *PlacementScreen) testing() bool {
	return p.s.State.Phase == sess.PhasePlacement
}

func (p *PlacementScreen) start(lang problemgen.Language) tea.Cmd {
	p.busy = true
	p.errMsg = ""
	engine := p.s.Engine
	return p.s.Run(opStart, func(ctx context.Context, st *sess.State) error {
		return engine.StartPlacement(ctx, st, string(lang))
	})
}

func (p *PlacementScreen) beginQuestions() {
	p.index = 0
	p.answers = p.answers[:0]
	p.loadQuestion()
}

func (p *PlacementScreen) loadQuestion() {
	qs := p.s.State.Questions
	if p.index < len(qs) {
		q := qs[p.index]
		p.current = components.NewMultiChoice(q.Question, q.Options)
	}
}

func (p *PlacementScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case shared.OpDoneMsg:
		return p.handleDone(msg)

	case tea.KeyPressMsg:
		if p.busy {
			return p, nil
		}
		if p.testing() {
			return p.handleTestKey(msg)
		}
		if msg.String() == "ctrl+l" {
			p.busy = true
			engine := p.s.Engine
			return p, p.s.Run(opLogout, func(_ context.Context, st *sess.State) error {
				engine.Logout(st)
				return nil
			})
		}
		var cmd tea.Cmd
		p.langs, cmd = p.langs.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PlacementScreen) handleTestKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	qs := p.s.State.Questions

	switch msg.String() {
	case "esc":
		p.busy = true
		engine := p.s.Engine
		return p, p.s.Run(opCancel, func(_ context.Context, st *sess.State) error {
			return engine.CancelPlacement(st)
		})
	case "enter":
		if p.index >= len(qs) {
			return p, p.submit()
		}
	}

	if p.index >= len(qs) {
		return p, nil
	}

	p.current, _ = p.current.Update(msg)
	if !p.current.Submitted {
		return p, nil
	}

	p.answers = append(p.answers, p.current.Choice())
	p.index++
	if p.index < len(qs) {
		p.loadQuestion()
		return p, nil
	}
	return p, p.submit()
}

func (p *PlacementScreen) submit() tea.Cmd {
	p.busy = true
	answers := append([]string(nil), p.answers...)
	engine := p.s.Engine
	return p.s.Run(opSubmit, func(ctx context.Context, st *sess.State) error {
		_, err := engine.SubmitPlacement(ctx, st, answers)
		return err
	})
}

func (p *PlacementScreen) handleDone(msg shared.OpDoneMsg) (screen.Screen, tea.Cmd) {
	p.busy = false
	p.s.Apply(msg)
	if msg.Err != nil {
		p.errMsg = shared.ErrorText(msg.Err)
		return p, nil
	}

	switch msg.Op {
	case opStart:
		p.beginQuestions()
	case opCancel:
		p.answers = p.answers[:0]
	case opSubmit, opLogout:
		return p, p.s.GoHome()
	}
	return p, nil
}

func (p *PlacementScreen) View(width, height int) string {
	var b strings.Builder

	if p.testing() {
		qs := p.s.State.Questions
		b.WriteString(theme.Title.Render(fmt.Sprintf("%s 실력 테스트", p.s.State.PlacementLanguage)))
		b.WriteString("\n")
		switch {
		case len(qs) == 0:
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render("준비된 문항이 없습니다. Enter를 눌러 레벨 1로 시작하세요."))
		case p.index < len(qs):
			b.WriteString(theme.Subtitle.Render(fmt.Sprintf("문제 %d / %d", p.index+1, len(qs))))
			b.WriteString("\n\n")
			b.WriteString(p.current.View())
		default:
			b.WriteString(theme.Hint.Render("채점 중..."))
		}
	} else {
		b.WriteString(theme.Title.Render("학습할 언어를 선택하세요"))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("객관식 테스트로 시작 레벨을 정합니다."))
		b.WriteString("\n\n")
		b.WriteString(p.langs.View())
	}

	if p.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(p.errMsg))
	}

	card := theme.Card.Width(min(80, width-4)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
