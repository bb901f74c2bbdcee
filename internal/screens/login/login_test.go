package login

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/router"
	"github.com/abhisek/codemaster/internal/screens/shared/sharedtest"
	sess "github.com/abhisek/codemaster/internal/session"
)

func typeText(l *LoginScreen, s string) {
	for _, r := range s {
		l.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestSignupThenLogin(t *testing.T) {
	f := sharedtest.New(t)
	l := New(f.Session)
	l.Init()

	l.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	if l.mode != modeSignup {
		t.Fatal("ctrl+t should switch to signup")
	}

	typeText(l, "kim")
	l.Update(press(tea.KeyEnter))
	typeText(l, "secret")
	_, cmd := l.Update(press(tea.KeyEnter))
	if !l.busy {
		t.Fatal("expected busy while the signup runs")
	}
	sharedtest.Drive(l, cmd)

	if l.errMsg != "" {
		t.Fatalf("unexpected error: %s", l.errMsg)
	}
	if l.notice != sess.MsgSignupComplete {
		t.Errorf("notice = %q, want signup notice", l.notice)
	}
	if l.mode != modeLogin || l.inputs[1].Value() != "" {
		t.Error("after signup the form should switch to login with a blank password")
	}

	typeText(l, "secret")
	_, cmd = l.Update(press(tea.KeyEnter))
	_, nav := sharedtest.Drive(l, cmd)

	if f.Session.State.UserName != "kim" || f.Session.State.Phase != sess.PhaseUntested {
		t.Fatalf("state = %q/%v, want kim untested", f.Session.State.UserName, f.Session.State.Phase)
	}
	if len(nav) != 1 {
		t.Fatalf("expected one navigation message, got %v", nav)
	}
	reset, ok := nav[0].(router.ResetScreenMsg)
	if !ok || reset.Screen.Title() != "home" {
		t.Errorf("expected reset to home, got %#v", nav[0])
	}
}

func TestBadCredentialsShowError(t *testing.T) {
	f := sharedtest.New(t)
	l := New(f.Session)
	l.Init()

	typeText(l, "ghost")
	l.Update(press(tea.KeyEnter))
	typeText(l, "nope")
	_, cmd := l.Update(press(tea.KeyEnter))
	_, nav := sharedtest.Drive(l, cmd)

	if l.errMsg == "" {
		t.Error("expected an error message")
	}
	if len(nav) != 0 {
		t.Errorf("failed login must not navigate, got %v", nav)
	}
	if f.Session.State.LoggedIn() {
		t.Error("session should stay anonymous")
	}
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	f := sharedtest.New(t)
	l := New(f.Session)
	l.busy = true

	_, cmd := l.Update(press(tea.KeyEnter))
	if cmd != nil {
		t.Error("no command expected while busy")
	}
}
