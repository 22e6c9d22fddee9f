package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/iqfieldbot/internal/ui/theme"
)

// MultiChoice selects one of a question's options. It does not know the
// correct answer; the engine scores the chosen text.
type MultiChoice struct {
	Options  []string
	Selected int
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update handles arrow navigation and number keys. It returns the chosen
// option and true when the learner commits a choice.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, string, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Options) == 0 {
		return m, "", false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		return m, m.Options[m.Selected], true
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				return m, m.Options[i], true
			}
		}
	}
	return m, "", false
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		if i == m.Selected {
			b.WriteString(theme.Selected.Render(fmt.Sprintf("  ▸ %d) %s", i+1, opt)))
		} else {
			b.WriteString(theme.Unselected.Render(fmt.Sprintf("    %d) %s", i+1, opt)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
