package practice

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/router"
	"github.com/abhisek/codemaster/internal/screens/shared/sharedtest"
	sess "github.com/abhisek/codemaster/internal/session"
)

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newScreen(t *testing.T, score int) (*PracticeScreen, *sharedtest.Fixture) {
	t.Helper()
	f := sharedtest.New(t)
	f.LoginLeveled(t, "kim", score)
	p := New(f.Session)
	p.Init()
	return p, f
}

func requestProblem(t *testing.T, p *PracticeScreen) {
	t.Helper()
	_, cmd := p.Update(press(tea.KeyEnter))
	sharedtest.Drive(p, cmd)
	if p.s.State.Phase != sess.PhaseActive {
		t.Fatalf("phase = %v, want active (err %q)", p.s.State.Phase, p.errMsg)
	}
}

func TestRequestProblemLoadsTemplate(t *testing.T) {
	p, _ := newScreen(t, 0)
	requestProblem(t, p)

	if got := p.editor.Value(); !strings.HasPrefix(got, "def solution(a, b):") {
		t.Errorf("editor = %q, want the Python template", got)
	}
	if !p.haveUsage {
		t.Error("usage should be refreshed after an operation")
	}
	if view := p.View(140, 40); !strings.Contains(view, "두 수의 합") {
		t.Errorf("view should show the problem title:\n%s", view)
	}
}

func TestCorrectSubmissionAwardsPoints(t *testing.T) {
	p, f := newScreen(t, 0)
	requestProblem(t, p)
	f.Oracle.AddResponse(sharedtest.Verdict(true, "잘했습니다"))

	_, cmd := p.Update(ctrl('s'))
	if p.busy == "" {
		t.Fatal("expected busy while grading")
	}
	sharedtest.Drive(p, cmd)

	st := f.Session.State
	if st.Phase != sess.PhaseGraded {
		t.Fatalf("phase = %v, want graded", st.Phase)
	}
	if st.Account.TotalScore != 20 {
		t.Errorf("score = %d, want 20", st.Account.TotalScore)
	}
	if p.editor.Value() != "" {
		t.Error("editor should clear once the problem is solved")
	}
	if view := p.View(140, 40); !strings.Contains(view, "+20점") {
		t.Errorf("graded view missing award:\n%s", view)
	}

	_, cmd = p.Update(press(tea.KeyEnter))
	sharedtest.Drive(p, cmd)
	if st := f.Session.State; st.Phase != sess.PhaseIdle {
		t.Errorf("phase after continue = %v, want idle", st.Phase)
	}
}

func TestIncorrectSubmissionKeepsCode(t *testing.T) {
	p, f := newScreen(t, 0)
	requestProblem(t, p)
	p.editor.SetValue("def solution(a, b):\n    return a - b")
	f.Oracle.AddResponse(sharedtest.Verdict(false, "빼기가 아니라 더하기입니다"))

	_, cmd := p.Update(ctrl('s'))
	sharedtest.Drive(p, cmd)

	st := f.Session.State
	if st.Phase != sess.PhaseActive || st.CurrentPoints != 16 {
		t.Fatalf("phase/points = %v/%d, want active/16", st.Phase, st.CurrentPoints)
	}
	if !strings.Contains(p.editor.Value(), "a - b") {
		t.Error("a wrong answer must keep the learner's code")
	}
	if view := p.View(140, 40); !strings.Contains(view, "(-4점)") {
		t.Errorf("view should show the penalty:\n%s", view)
	}
}

func TestHintWithoutFunds(t *testing.T) {
	p, f := newScreen(t, 0)
	requestProblem(t, p)

	_, cmd := p.Update(ctrl('g'))
	sharedtest.Drive(p, cmd)

	if !strings.Contains(p.errMsg, "5점") {
		t.Errorf("errMsg = %q, want the hint cost", p.errMsg)
	}
	if f.Oracle.CallCount() != 0 {
		t.Error("an unaffordable hint must not reach the oracle")
	}
}

func TestHintPurchaseAndDismiss(t *testing.T) {
	p, f := newScreen(t, 50)
	requestProblem(t, p)
	f.Oracle.AddResponse(sharedtest.HintResponse("두 인자를 더해 반환하세요"))

	_, cmd := p.Update(ctrl('g'))
	sharedtest.Drive(p, cmd)

	st := f.Session.State
	if st.Hint == "" || st.Account.TotalScore != 45 {
		t.Fatalf("hint/score = %q/%d, want a hint and 45", st.Hint, st.Account.TotalScore)
	}
	if !strings.Contains(p.notice, "5점") {
		t.Errorf("notice = %q", p.notice)
	}

	_, cmd = p.Update(ctrl('x'))
	sharedtest.Drive(p, cmd)
	if f.Session.State.Hint != "" {
		t.Error("ctrl+x should dismiss the hint")
	}
}

func TestTypingGoesToEditor(t *testing.T) {
	p, _ := newScreen(t, 0)
	requestProblem(t, p)
	p.editor.SetValue("")

	for _, r := range "x = 1" {
		p.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	if p.editor.Value() != "x = 1" {
		t.Errorf("editor = %q, want %q", p.editor.Value(), "x = 1")
	}
}

func TestShortcutsOpenScreens(t *testing.T) {
	p, _ := newScreen(t, 0)

	for _, key := range []rune{'o', 'r'} {
		_, cmd := p.Update(ctrl(key))
		if cmd == nil {
			t.Fatalf("ctrl+%c should open a screen", key)
		}
		if _, ok := cmd().(router.PushScreenMsg); !ok {
			t.Errorf("ctrl+%c: expected PushScreenMsg", key)
		}
	}
}

func TestLogoutGoesHome(t *testing.T) {
	p, f := newScreen(t, 0)

	_, cmd := p.Update(ctrl('l'))
	_, nav := sharedtest.Drive(p, cmd)

	if f.Session.State.LoggedIn() {
		t.Error("expected logged out")
	}
	found := false
	for _, m := range nav {
		if _, ok := m.(router.ResetScreenMsg); ok {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ResetScreenMsg, got %v", nav)
	}
}

func TestResumeClearsDiscardedProblem(t *testing.T) {
	p, f := newScreen(t, 0)
	requestProblem(t, p)

	if err := f.Session.Engine.ChangeSettings(t.Context(), f.Session.State, "Java", 2); err != nil {
		t.Fatalf("change settings: %v", err)
	}
	p.Resume()

	if p.editor.Value() != "" || p.shownID != "" {
		t.Error("resume should clear the editor when the problem is gone")
	}
}
