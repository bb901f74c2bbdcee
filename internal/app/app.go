package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/router"
	"github.com/abhisek/codemaster/internal/screen"
	"github.com/abhisek/codemaster/internal/screens/login"
	placementscreen "github.com/abhisek/codemaster/internal/screens/placement"
	"github.com/abhisek/codemaster/internal/screens/practice"
	"github.com/abhisek/codemaster/internal/screens/shared"
	"github.com/abhisek/codemaster/internal/screens/welcome"
	"github.com/abhisek/codemaster/internal/session"
	"github.com/abhisek/codemaster/internal/store"
	"github.com/abhisek/codemaster/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	Engine *session.Engine

	// Events backs the history screen. Optional.
	Events store.EventRepo

	// SkipWelcome starts on the login screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	session *shared.Session
	width   int
	height  int
}

// newAppModel creates a new AppModel with the welcome or login screen.
func newAppModel(ctx context.Context, opts Options) AppModel {
	s := &shared.Session{
		Ctx:    ctx,
		Engine: opts.Engine,
		State:  session.NewState(),
		Events: opts.Events,
	}
	s.Home = func() screen.Screen { return homeFor(s) }

	var first screen.Screen
	if opts.SkipWelcome {
		first = homeFor(s)
	} else {
		first = welcome.New(s.Home)
	}
	return AppModel{
		router:  router.New(first),
		session: s,
	}
}

// homeFor picks the screen for the session's phase.
func homeFor(s *shared.Session) screen.Screen {
	switch s.State.Phase {
	case session.PhaseAnonymous:
		return login.New(s)
	case session.PhaseUntested, session.PhasePlacement:
		return placementscreen.New(s)
	default:
		return practice.New(s)
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	st := m.session.State
	header := layout.RenderHeader(title, st.UserName, st.Account.TotalScore, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
