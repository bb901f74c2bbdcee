package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and CodeMaster styling.
type TextInput struct {
	Label string
	Model textinput.Model
}

// NewTextInput creates a new styled text input. Masked inputs echo
// bullets instead of the typed characters.
func NewTextInput(label, placeholder string, masked bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if masked {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{
		Label: label,
		Model: ti,
	}
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and the input.
func (t TextInput) View() string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10)
	if t.Model.Focused() {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return style.Render(t.Label) + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}
