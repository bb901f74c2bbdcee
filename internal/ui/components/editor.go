package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// Editor is a multi-line code editor built on bubbles/textarea.
type Editor struct {
	Model textarea.Model
}

// NewEditor creates an empty editor with line numbers.
func NewEditor() Editor {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Placeholder = "코드를 작성하세요..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	return Editor{Model: ta}
}

// Focus gives the editor keyboard focus.
func (e *Editor) Focus() tea.Cmd {
	return e.Model.Focus()
}

// Blur removes keyboard focus.
func (e *Editor) Blur() {
	e.Model.Blur()
}

// SetValue replaces the buffer.
func (e *Editor) SetValue(s string) {
	e.Model.SetValue(s)
}

// Value returns the buffer.
func (e Editor) Value() string {
	return e.Model.Value()
}

// SetSize resizes the editing area.
func (e *Editor) SetSize(width, height int) {
	e.Model.SetWidth(width)
	e.Model.SetHeight(height)
}

// Update handles messages. Tab inserts four spaces.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "tab" {
		e.Model.InsertString("    ")
		return e, nil
	}
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// View renders the editor.
func (e Editor) View() string {
	return e.Model.View()
}
