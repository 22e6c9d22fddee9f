package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/iqfieldbot/internal/problemgen"
	"github.com/abhisek/iqfieldbot/internal/session"
	"github.com/abhisek/iqfieldbot/internal/ui/components"
	"github.com/abhisek/iqfieldbot/internal/ui/layout"
)

type phase int

const (
	phaseLoading   phase = iota // engine call in flight
	phasePickField              // field menu shown
	phaseAnswering              // waiting for the learner
	phaseComplete               // report shown
	phaseError
)

type model struct {
	ctx    context.Context
	engine *session.Engine

	// preset is selected automatically once, then cleared.
	preset problemgen.Field

	phase     phase
	session   *session.Session
	analytics *session.Analytics
	err       error

	fields  components.Menu
	choices components.MultiChoice
	mcMode  bool
	input   components.TextInput

	width  int
	height int
}

func newModel(ctx context.Context, opts Options) model {
	m := model{
		ctx:    ctx,
		engine: opts.Engine,
		preset: opts.Field,
		phase:  phaseLoading,
		input:  components.NewTextInput("Type your answer...", 200),
	}
	m.fields = m.fieldMenu()
	return m
}

func (m model) fieldMenu() components.Menu {
	items := make([]components.MenuItem, len(problemgen.AllFields))
	for i, f := range problemgen.AllFields {
		items[i] = components.MenuItem{
			Label: f.Title(),
			Hint:  fieldHints[f],
			Action: func() tea.Cmd {
				return func() tea.Msg { return fieldChosenMsg{Field: f} }
			},
		}
	}
	return components.NewMenu(items)
}

var fieldHints = map[problemgen.Field]string{
	problemgen.FieldMath:           "arithmetic and number sequences",
	problemgen.FieldLogic:          "deduction and syllogisms",
	problemgen.FieldProgramming:    "code reading and algorithms",
	problemgen.FieldLanguage:       "analogies and vocabulary",
	problemgen.FieldVisualPatterns: "shapes and symbol series",
}

// fieldChosenMsg is emitted by the field menu.
type fieldChosenMsg struct {
	Field problemgen.Field
}

func (m model) Init() tea.Cmd {
	return createSession(m.ctx, m.engine)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(msg.Width-8, 10))
		return m, nil

	case sessionMsg:
		return m.handleSession(msg)

	case analyticsMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.phase = phaseError
			return m, nil
		}
		m.analytics = msg.Analytics
		return m, nil

	case fieldChosenMsg:
		if m.phase != phasePickField {
			return m, nil
		}
		m.phase = phaseLoading
		return m, selectField(m.ctx, m.engine, m.session.ID, msg.Field)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseAnswering && !m.mcMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleSession(msg sessionMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.err = msg.Err
		m.phase = phaseError
		return m, nil
	}
	m.session = msg.Session

	switch m.session.State() {
	case session.StateAwaitingField:
		if m.preset != "" {
			f := m.preset
			m.preset = ""
			m.phase = phaseLoading
			return m, selectField(m.ctx, m.engine, m.session.ID, f)
		}
		m.fields = m.fieldMenu()
		m.phase = phasePickField
		return m, nil

	case session.StateAwaitingAnswer:
		q := m.session.CurrentQuestion
		m.mcMode = q.Kind == problemgen.KindMultipleChoice && len(q.Choices) > 0
		if m.mcMode {
			m.choices = components.NewMultiChoice(q.Choices)
		}
		m.input.Reset()
		m.phase = phaseAnswering
		return m, nil

	default:
		m.phase = phaseComplete
		return m, loadAnalytics(m.ctx, m.engine, m.session.ID)
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.phase {
	case phasePickField:
		if key == "esc" || key == "q" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.fields, cmd = m.fields.Update(msg)
		return m, cmd

	case phaseAnswering:
		if key == "esc" {
			return m, tea.Quit
		}
		if m.mcMode {
			var answer string
			var ok bool
			m.choices, answer, ok = m.choices.Update(msg)
			if !ok {
				return m, nil
			}
			return m.submit(answer)
		}
		if key == "enter" {
			if m.input.Value() == "" {
				return m, nil
			}
			return m.submit(m.input.Value())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case phaseComplete:
		switch key {
		case "n":
			m.session = nil
			m.analytics = nil
			m.phase = phaseLoading
			return m, createSession(m.ctx, m.engine)
		case "q", "esc", "enter":
			return m, tea.Quit
		}

	case phaseError:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) submit(answer string) (tea.Model, tea.Cmd) {
	m.phase = phaseLoading
	return m, submitAnswer(m.ctx, m.engine, m.session.ID, answer)
}

func (m model) keyHints() []layout.KeyHint {
	switch m.phase {
	case phasePickField:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Quit"},
		}
	case phaseAnswering:
		if m.mcMode {
			return []layout.KeyHint{
				{Key: "1-9", Description: "Choose"},
				{Key: "↑↓ Enter", Description: "Select"},
				{Key: "Esc", Description: "Quit"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	case phaseComplete:
		return []layout.KeyHint{
			{Key: "N", Description: "New session"},
			{Key: "Q", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}
