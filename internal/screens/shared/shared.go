// Package shared holds what every CodeMaster screen needs: the session
// engine, the current session state and the way to run engine operations
// without blocking the UI loop.
package shared

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/problemgen"
	"github.com/abhisek/codemaster/internal/screen"
	"github.com/abhisek/codemaster/internal/session"
	"github.com/abhisek/codemaster/internal/store"
)

// Session is the terminal user's session. Screens share one *Session.
type Session struct {
	Ctx    context.Context
	Engine *session.Engine
	State  *session.State

	// Events backs the history screen. Optional.
	Events store.EventRepo

	// Home returns the screen that fits the current phase: login,
	// placement or practice.
	Home func() screen.Screen
}

// OpDoneMsg carries the outcome of an engine operation started by Run.
type OpDoneMsg struct {
	Op    string
	State *session.State
	Err   error
}

// Run executes fn against a copy of the current state in a command. The
// copy comes back in an OpDoneMsg and becomes current through Apply, so
// the UI never reads a state that is being mutated.
func (s *Session) Run(op string, fn func(ctx context.Context, st *session.State) error) tea.Cmd {
	st := s.State.Clone()
	ctx := s.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		err := fn(ctx, st)
		return OpDoneMsg{Op: op, State: st, Err: err}
	}
}

// Apply makes the state carried by msg current.
func (s *Session) Apply(msg OpDoneMsg) {
	if msg.State != nil {
		s.State = msg.State
	}
}

// TakeNotice returns and clears the pending notice.
func (s *Session) TakeNotice() string {
	n := s.State.Notice
	s.State.Notice = ""
	return n
}

// GoHome resets the screen stack to the screen for the current phase.
func (s *Session) GoHome() tea.Cmd {
	next := s.Home()
	return func() tea.Msg { return resetMsg(next) }
}

// ErrorText turns an operation error into a message for the learner. It
// is empty when the session notice already explains the outcome.
func ErrorText(err error) string {
	if err == nil || errors.Is(err, problemgen.ErrLevelComplete) {
		return ""
	}
	var quota *session.QuotaDeniedError
	if errors.As(err, &quota) {
		return quota.Error() + "\n" + quota.Detail()
	}
	var funds *session.InsufficientScoreError
	if errors.As(err, &funds) || session.IsValidation(err) || errors.Is(err, session.ErrOracle) {
		return err.Error()
	}
	return fmt.Sprintf("오류가 발생했습니다: %v", err)
}
