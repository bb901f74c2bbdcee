// Package screen defines what the router needs from a screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/ui/layout"
)

// Screen is one page of the app: login, placement, practice and so on.
type Screen interface {
	// Init returns the first command, run when the screen is pushed.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body; the app draws header and footer around it.
	View(width, height int) string

	// Title names the screen in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that refresh when they become active
// again after a Pop, for example to pick up settings changed on the
// screen above.
type Resumer interface {
	Resume() tea.Cmd
}
