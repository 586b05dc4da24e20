package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/studysquad/studysquad/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with app styling.
type TextInput struct {
	Model    textinput.Model
	Label    string
	Disabled bool
}

// NewTextInput creates a new, unfocused text input.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{
		Model: ti,
		Label: label,
	}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// SetWidth sets the visible width of the field.
func (t *TextInput) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	t.Model.SetWidth(w)
}

// Update forwards messages to the underlying model unless disabled.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Disabled {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label (if any) above the field.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.Disabled {
		view = theme.Hint.Render(t.Model.Placeholder)
	}
	if t.Label == "" {
		return view
	}
	return theme.Label.Render(t.Label) + "\n" + view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}
