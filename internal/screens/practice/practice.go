package practice

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/governor"
	"github.com/abhisek/codemaster/internal/problemgen"
	"github.com/abhisek/codemaster/internal/screen"
	"github.com/abhisek/codemaster/internal/screens/history"
	"github.com/abhisek/codemaster/internal/screens/settings"
	"github.com/abhisek/codemaster/internal/screens/shared"
	sess "github.com/abhisek/codemaster/internal/session"
	"github.com/abhisek/codemaster/internal/ui/components"
	"github.com/abhisek/codemaster/internal/ui/layout"
)

const (
	opProblem = "problem"
	opHint    = "hint"
	opDismiss = "hint.dismiss"
	opSubmit  = "submit"
	opAck     = "acknowledge"
	opLogout  = "logout"
)

// usageMsg carries a fresh read of the oracle budget.
type usageMsg struct {
	Usage governor.Usage
}

// PracticeScreen is the main screen once a learner has a level: the
// problem, a code editor and a sidebar with score, budget, hint and
// grading feedback.
type PracticeScreen struct {
	s         *shared.Session
	editor    components.Editor
	shownID   string
	usage     governor.Usage
	haveUsage bool
	busy      string
	notice    string
	errMsg    string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a PracticeScreen.
func New(s *shared.Session) *PracticeScreen {
	return &PracticeScreen{
		s:      s,
		editor: components.NewEditor(),
	}
}

func (p *PracticeScreen) Init() tea.Cmd {
	p.notice = p.s.TakeNotice()
	p.syncEditor()
	return tea.Batch(p.fetchUsage(), p.editor.Focus())
}

// Resume refreshes after settings or history close.
func (p *PracticeScreen) Resume() tea.Cmd {
	if n := p.s.TakeNotice(); n != "" {
		p.notice = n
	}
	p.syncEditor()
	return p.fetchUsage()
}

func (p *PracticeScreen) Title() string {
	return "코딩 연습"
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	st := p.s.State
	switch st.Phase {
	case sess.PhaseActive:
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Ctrl+G", Description: "Hint"},
			{Key: "Ctrl+N", Description: "New problem"},
			{Key: "Ctrl+O", Description: "Settings"},
			{Key: "Ctrl+R", Description: "History"},
			{Key: "Ctrl+L", Description: "Logout"},
		}
	case sess.PhaseGraded:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Ctrl+N", Description: "Next problem"},
			{Key: "Ctrl+L", Description: "Logout"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "New problem"},
		{Key: "Ctrl+O", Description: "Settings"},
		{Key: "Ctrl+R", Description: "History"},
		{Key: "Ctrl+L", Description: "Logout"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case shared.OpDoneMsg:
		return p.handleDone(msg)

	case usageMsg:
		p.usage = msg.Usage
		p.haveUsage = true
		return p, nil

	case tea.KeyPressMsg:
		if p.busy != "" {
			return p, nil
		}
		if cmd, ok := p.handleKey(msg); ok {
			return p, cmd
		}
	}

	if p.s.State.Phase == sess.PhaseActive {
		var cmd tea.Cmd
		p.editor, cmd = p.editor.Update(msg)
		return p, cmd
	}
	return p, nil
}

// handleKey runs shortcuts. ok is false for keys meant for the editor.
func (p *PracticeScreen) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	phase := p.s.State.Phase
	engine := p.s.Engine

	switch msg.String() {
	case "ctrl+n":
		return p.run(opProblem, "문제를 준비하는 중...", func(ctx context.Context, st *sess.State) error {
			if st.Phase == sess.PhaseGraded {
				if err := engine.Acknowledge(st); err != nil {
					return err
				}
			}
			return engine.RequestProblem(ctx, st)
		}), true

	case "enter":
		switch phase {
		case sess.PhaseIdle:
			return p.run(opProblem, "문제를 준비하는 중...", func(ctx context.Context, st *sess.State) error {
				return engine.RequestProblem(ctx, st)
			}), true
		case sess.PhaseGraded:
			return p.run(opAck, "", func(_ context.Context, st *sess.State) error {
				return engine.Acknowledge(st)
			}), true
		}

	case "ctrl+s":
		if phase == sess.PhaseActive {
			code := p.editor.Value()
			return p.run(opSubmit, "AI가 코드를 채점하는 중...", func(ctx context.Context, st *sess.State) error {
				_, err := engine.SubmitSolution(ctx, st, code)
				return err
			}), true
		}

	case "ctrl+g":
		if phase == sess.PhaseActive {
			return p.run(opHint, "힌트를 생성하는 중...", func(ctx context.Context, st *sess.State) error {
				return engine.RequestHint(ctx, st)
			}), true
		}

	case "ctrl+x":
		if phase == sess.PhaseActive && p.s.State.Hint != "" {
			return p.run(opDismiss, "", func(_ context.Context, st *sess.State) error {
				return engine.DismissHint(st)
			}), true
		}

	case "ctrl+o":
		return shared.Push(settings.New(p.s)), true

	case "ctrl+r":
		return shared.Push(history.New(p.s)), true

	case "ctrl+l":
		return p.run(opLogout, "", func(_ context.Context, st *sess.State) error {
			engine.Logout(st)
			return nil
		}), true
	}

	return nil, phase != sess.PhaseActive
}

func (p *PracticeScreen) run(op, busy string, fn func(ctx context.Context, st *sess.State) error) tea.Cmd {
	if busy == "" {
		busy = "처리 중..."
	}
	p.busy = busy
	p.errMsg = ""
	p.notice = ""
	return p.s.Run(op, fn)
}

func (p *PracticeScreen) handleDone(msg shared.OpDoneMsg) (screen.Screen, tea.Cmd) {
	p.busy = ""
	p.s.Apply(msg)
	p.notice = p.s.TakeNotice()
	p.errMsg = shared.ErrorText(msg.Err)

	if msg.Op == opLogout {
		return p, p.s.GoHome()
	}

	p.syncEditor()
	return p, p.fetchUsage()
}

// syncEditor loads the starter code when the active problem changes and
// clears the editor when there is none.
func (p *PracticeScreen) syncEditor() {
	st := p.s.State
	if st.Problem == nil {
		if p.shownID != "" {
			p.editor.SetValue("")
			p.shownID = ""
		}
		return
	}
	if st.Problem.ID == p.shownID {
		return
	}
	p.shownID = st.Problem.ID
	p.editor.SetValue(problemgen.EditorTemplate(st.Language(), st.Problem.FunctionStub))
}

func (p *PracticeScreen) fetchUsage() tea.Cmd {
	engine := p.s.Engine
	ctx := p.s.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		return usageMsg{Usage: engine.Usage(ctx)}
	}
}
