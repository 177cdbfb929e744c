package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NameInput wraps bubbles/textinput for entering a short name.
type NameInput struct {
	Model textinput.Model
}

// NewNameInput creates a focused input limited to maxLen characters.
func NewNameInput(placeholder, initial string, maxLen int) NameInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = maxLen
	ti.SetValue(initial)
	ti.Focus()
	return NameInput{Model: ti}
}

// Init focuses the input.
func (n *NameInput) Init() tea.Cmd {
	return n.Model.Focus()
}

// Update forwards messages to the text input.
func (n NameInput) Update(msg tea.Msg) (NameInput, tea.Cmd) {
	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// View renders the input.
func (n NameInput) View() string {
	return n.Model.View()
}

// Value returns the trimmed input.
func (n NameInput) Value() string {
	return strings.TrimSpace(n.Model.Value())
}
