package shared

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/router"
	"github.com/abhisek/codemaster/internal/screen"
)

func resetMsg(s screen.Screen) tea.Msg {
	return router.ResetScreenMsg{Screen: s}
}

// Push opens s on top of the current screen.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// Pop returns to the previous screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}
