package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/studysquad/studysquad/internal/ui/theme"
)

// Selector is a horizontal single-choice list, like a drop-down laid flat.
type Selector struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
}

// NewSelector creates a selector with the given option preselected.
func NewSelector(label string, options []string, selected int) Selector {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return Selector{
		Label:    label,
		Options:  options,
		Selected: selected,
	}
}

// Update handles left/right navigation while focused.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	if !s.Focused {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if s.Selected > 0 {
			s.Selected--
		}
	case "right", "l":
		if s.Selected < len(s.Options)-1 {
			s.Selected++
		}
	}
	return s, nil
}

// View renders the selector on one line.
func (s Selector) View() string {
	var b strings.Builder
	b.WriteString(theme.Label.Render(s.Label))
	b.WriteString(" ")
	for i, opt := range s.Options {
		if i > 0 {
			b.WriteString("  ")
		}
		switch {
		case i == s.Selected && s.Focused:
			b.WriteString(theme.Selected.Render("◂ " + opt + " ▸"))
		case i == s.Selected:
			b.WriteString(theme.Selected.Render("[" + opt + "]"))
		default:
			b.WriteString(theme.Unselected.Render(" " + opt + " "))
		}
	}
	return b.String()
}
