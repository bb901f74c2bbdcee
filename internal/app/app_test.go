package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/router"
	"github.com/abhisek/codemaster/internal/screens/shared/sharedtest"
	"github.com/abhisek/codemaster/internal/session"
)

func newTestModel(t *testing.T) (AppModel, *sharedtest.Fixture) {
	t.Helper()
	f := sharedtest.New(t)
	m := newAppModel(t.Context(), Options{Engine: f.Session.Engine, Events: f.Events, SkipWelcome: true})
	return m, f
}

func TestHomeForPhase(t *testing.T) {
	m, _ := newTestModel(t)
	s := m.session

	tests := []struct {
		phase session.Phase
		title string
	}{
		{session.PhaseAnonymous, "로그인"},
		{session.PhaseUntested, "실력 테스트"},
		{session.PhasePlacement, "실력 테스트"},
		{session.PhaseIdle, "코딩 연습"},
		{session.PhaseActive, "코딩 연습"},
		{session.PhaseGraded, "코딩 연습"},
	}
	for _, tt := range tests {
		s.State.Phase = tt.phase
		if got := homeFor(s).Title(); got != tt.title {
			t.Errorf("homeFor(%v) = %q, want %q", tt.phase, got, tt.title)
		}
	}
}

func TestStartsOnLoginWhenWelcomeSkipped(t *testing.T) {
	m, _ := newTestModel(t)
	if got := m.router.Active().Title(); got != "로그인" {
		t.Errorf("first screen = %q, want 로그인", got)
	}
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Fatal("esc at the root must not pop")
		}
	}

	m.router.Push(sharedtest.Stub("child"))
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc above the root should pop")
	}
}

func TestViewRendersHeaderAndFooter(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	v := next.(AppModel).View()
	if !v.AltScreen {
		t.Error("expected alt screen")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}
