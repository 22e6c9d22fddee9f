package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iqfieldbot/internal/session"
	"github.com/abhisek/iqfieldbot/internal/ui/components"
	"github.com/abhisek/iqfieldbot/internal/ui/layout"
	"github.com/abhisek/iqfieldbot/internal/ui/theme"
)

func (m model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if s := m.render(); s != "" {
		v.SetContent(s)
	}
	return v
}

// render draws the full frame for the current terminal size.
func (m model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	var score int
	difficulty := m.engine.Config().InitialDifficulty
	if m.session != nil {
		score = m.session.Score
		difficulty = m.session.Difficulty
	}
	header := layout.RenderHeader(m.title(), score, difficulty, m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	return layout.RenderFrame(header, m.content(m.width, contentHeight), footer, m.width, m.height)
}

func (m model) title() string {
	if m.session == nil || m.session.SelectedField == "" {
		return "Choose a field"
	}
	return fmt.Sprintf("%s · %d/%d", m.session.SelectedField.Title(),
		m.session.TotalQuestions, m.engine.Config().Length)
}

// content renders the transcript above the input area, keeping the most
// recent lines when the transcript does not fit.
func (m model) content(width, height int) string {
	bottom := m.bottomPane(width)
	avail := height - lipgloss.Height(bottom) - 1
	if avail < 0 {
		avail = 0
	}

	lines := strings.Split(m.transcript(width), "\n")
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}
	return strings.Join(lines, "\n") + "\n" + bottom
}

func (m model) transcript(width int) string {
	if m.session == nil {
		return ""
	}
	wrap := lipgloss.NewStyle().Width(max(width-6, 10))

	var b strings.Builder
	for _, msg := range m.session.Messages {
		switch msg.Kind {
		case session.KindUser:
			b.WriteString(theme.UserName.Render("  You"))
			b.WriteString("\n")
			b.WriteString(wrap.Foreground(theme.Text).Render("  " + msg.Content))
		case session.KindQuestion:
			b.WriteString(theme.BotName.Render("  IQFieldBot"))
			b.WriteString("\n")
			b.WriteString(theme.Card.Render(wrap.Inherit(theme.QuestionText).Render(msg.Content)))
		default:
			b.WriteString(theme.BotName.Render("  IQFieldBot"))
			b.WriteString("\n")
			style := wrap.Foreground(theme.Text)
			if msg.IsCorrect != nil {
				if *msg.IsCorrect {
					style = wrap.Inherit(theme.Correct)
				} else {
					style = wrap.Inherit(theme.Incorrect)
				}
			}
			b.WriteString(style.Render("  " + msg.Content))
		}
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) bottomPane(width int) string {
	switch m.phase {
	case phaseLoading:
		return theme.Hint.Render("  Thinking...")
	case phasePickField:
		return m.fields.View()
	case phaseAnswering:
		if m.mcMode {
			return m.choices.View()
		}
		return "  " + m.input.View()
	case phaseComplete:
		return m.report(width)
	case phaseError:
		return lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(fmt.Sprintf("  Error: %v\n\n  Press any key to exit.", m.err))
	}
	return ""
}

// report renders the end-of-session summary.
func (m model) report(width int) string {
	a := m.analytics
	if a == nil {
		return theme.Hint.Render("  Preparing your report...")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Session complete"))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("  Accuracy", int(a.Accuracy*100), 100, min(width-4, 60)).View())
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("  Score %d · %d questions · difficulty reached %.1f · %.0fs",
		a.TotalScore, a.QuestionsAnswered, a.DifficultyReached, a.TimeSpentSeconds)))
	b.WriteString("\n")
	if len(a.Strengths) > 0 {
		b.WriteString(theme.Correct.Render("  Strengths: " + strings.Join(a.Strengths, ", ")))
		b.WriteString("\n")
	}
	if len(a.Weaknesses) > 0 {
		b.WriteString(theme.Incorrect.Render("  Needs work: " + strings.Join(a.Weaknesses, ", ")))
		b.WriteString("\n")
	}
	for _, r := range a.Recommendations {
		b.WriteString(theme.Hint.Render("  • " + r))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
