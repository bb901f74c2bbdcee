package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/ui/theme"
)

// MenuItem is one row of a Menu. Note is rendered dimmed after the label.
type MenuItem struct {
	Label  string
	Note   string
	Action func() tea.Cmd
}

// Menu is a vertical list with a wrapping cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Select moves the cursor to i. Out-of-range indexes are ignored.
func (m *Menu) Select(i int) {
	if i >= 0 && i < len(m.Items) {
		m.Selected = i
	}
}

// Update moves the cursor on up/down (and k/j) and runs the selected
// item's Action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	n := len(m.Items)
	switch kmsg.String() {
	case "up", "k":
		m.Selected = (m.Selected - 1 + n) % n
	case "down", "j":
		m.Selected = (m.Selected + 1) % n
	case "enter":
		if action := m.Items[m.Selected].Action; action != nil {
			return m, action()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		} else {
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		if item.Note != "" {
			b.WriteString(" " + theme.Hint.Render(item.Note))
		}
		b.WriteString("\n")
	}
	return b.String()
}
