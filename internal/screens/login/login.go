package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/screen"
	"github.com/abhisek/codemaster/internal/screens/shared"
	sess "github.com/abhisek/codemaster/internal/session"
	"github.com/abhisek/codemaster/internal/ui/components"
	"github.com/abhisek/codemaster/internal/ui/layout"
	"github.com/abhisek/codemaster/internal/ui/theme"
)

type mode int

const (
	modeLogin mode = iota
	modeSignup
)

const (
	opLogin  = "login"
	opSignup = "signup"
)

// LoginScreen is the form shown while the session is anonymous. It logs in
// or creates an account.
type LoginScreen struct {
	s      *shared.Session
	mode   mode
	inputs []components.TextInput
	focus  int
	busy   bool
	notice string
	errMsg string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen.
func New(s *shared.Session) *LoginScreen {
	return &LoginScreen{
		s: s,
		inputs: []components.TextInput{
			components.NewTextInput("아이디", "username", false, 32),
			components.NewTextInput("비밀번호", "password", true, 64),
		},
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	l.notice = l.s.TakeNotice()
	return l.inputs[0].Focus()
}

func (l *LoginScreen) Title() string {
	if l.mode == modeSignup {
		return "회원가입"
	}
	return "로그인"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	toggle := "회원가입"
	if l.mode == modeSignup {
		toggle = "로그인"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+T", Description: toggle},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case shared.OpDoneMsg:
		return l.handleDone(msg)

	case tea.KeyPressMsg:
		if l.busy {
			return l, nil
		}
		switch msg.String() {
		case "tab", "down":
			return l, l.setFocus(l.focus + 1)
		case "shift+tab", "up":
			return l, l.setFocus(l.focus - 1)
		case "ctrl+t":
			if l.mode == modeLogin {
				l.mode = modeSignup
			} else {
				l.mode = modeLogin
			}
			l.errMsg = ""
			return l, nil
		case "enter":
			if l.focus < len(l.inputs)-1 {
				return l, l.setFocus(l.focus + 1)
			}
			return l, l.submit()
		}
	}

	var cmd tea.Cmd
	l.inputs[l.focus], cmd = l.inputs[l.focus].Update(msg)
	return l, cmd
}

func (l *LoginScreen) setFocus(i int) tea.Cmd {
	n := len(l.inputs)
	l.focus = ((i % n) + n) % n
	for j := range l.inputs {
		l.inputs[j].Blur()
	}
	return l.inputs[l.focus].Focus()
}

func (l *LoginScreen) submit() tea.Cmd {
	name := l.inputs[0].Value()
	password := l.inputs[1].Value()
	l.busy = true
	l.errMsg = ""
	l.notice = ""

	engine := l.s.Engine
	if l.mode == modeSignup {
		return l.s.Run(opSignup, func(ctx context.Context, st *sess.State) error {
			return engine.Signup(ctx, st, name, password)
		})
	}
	return l.s.Run(opLogin, func(ctx context.Context, st *sess.State) error {
		return engine.Login(ctx, st, name, password)
	})
}

func (l *LoginScreen) handleDone(msg shared.OpDoneMsg) (screen.Screen, tea.Cmd) {
	l.busy = false
	l.s.Apply(msg)
	if msg.Err != nil {
		l.errMsg = shared.ErrorText(msg.Err)
		return l, nil
	}

	switch msg.Op {
	case opSignup:
		l.notice = l.s.TakeNotice()
		l.mode = modeLogin
		l.inputs[1].Reset()
		return l, l.setFocus(1)
	case opLogin:
		return l, l.s.GoHome()
	}
	return l, nil
}

func (l *LoginScreen) View(width, height int) string {
	var b strings.Builder

	heading := "CodeMaster에 로그인하세요"
	if l.mode == modeSignup {
		heading = "새 계정을 만드세요"
	}
	b.WriteString(theme.Title.Render(heading))
	b.WriteString("\n\n")

	for _, in := range l.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case l.busy:
		b.WriteString(theme.Hint.Render("처리 중..."))
	case l.errMsg != "":
		b.WriteString(theme.Incorrect.Render(l.errMsg))
	case l.notice != "":
		b.WriteString(theme.Notice.Render(l.notice))
	}

	card := theme.FocusedCard.Width(min(60, width-4)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
