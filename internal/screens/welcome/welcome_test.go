package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/router"
	"github.com/abhisek/codemaster/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "login" }
func (s *stubScreen) Title() string                           { return "Login" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	next := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(next), &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(100, 30), "코딩 연습") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != 500*time.Millisecond {
		t.Errorf("expected elapsed 500ms, got %v", w.elapsed)
	}

	sendTicks(w, 10)
	if !strings.Contains(w.View(100, 30), "코딩 연습") {
		t.Error("tagline should be visible after 1.5s")
	}
}

func TestKeypressEmitsReplace(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("next should be called once, got %d", *callCount)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome()

	sendTicks(w, 60)
	if *callCount != 0 {
		t.Errorf("next should not be called without keypress, got %d", *callCount)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestTransitionHappensOnce(t *testing.T) {
	w, callCount := newTestWelcome()

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("next should be called exactly once, got %d", *callCount)
	}
}

func TestTypesSnippetsInTurn(t *testing.T) {
	w, _ := newTestWelcome()

	sendTicks(w, 5)
	if v := w.View(100, 30); !strings.Contains(v, "print") || strings.Contains(v, `print("hi")`) {
		t.Errorf("expected a partly typed python line:\n%s", v)
	}

	sendTicks(w, 10)
	if !strings.Contains(w.View(100, 30), `print("hi")`) {
		t.Error("python line should be fully typed")
	}

	sendTicks(w, holdTicks)
	if i, _ := w.typing(); snippets[i].lang != "C" {
		t.Errorf("expected the C snippet next, got %s", snippets[i].lang)
	}
}

func TestBannerFallsBackWhenNarrow(t *testing.T) {
	if !strings.Contains(RenderBanner(60), bannerCompact) {
		t.Error("narrow terminals should get the compact banner")
	}
}
