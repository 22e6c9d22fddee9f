package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/iqfieldbot/internal/problemgen"
	"github.com/abhisek/iqfieldbot/internal/session"
)

// sessionMsg carries the session after an engine transition.
type sessionMsg struct {
	Session *session.Session
	Err     error
}

// analyticsMsg carries the report for a completed session.
type analyticsMsg struct {
	Analytics *session.Analytics
	Err       error
}

func createSession(ctx context.Context, e *session.Engine) tea.Cmd {
	return func() tea.Msg {
		s, err := e.Create(ctx, "")
		return sessionMsg{Session: s, Err: err}
	}
}

func selectField(ctx context.Context, e *session.Engine, id string, f problemgen.Field) tea.Cmd {
	return func() tea.Msg {
		s, err := e.SelectField(ctx, id, f)
		return sessionMsg{Session: s, Err: err}
	}
}

func submitAnswer(ctx context.Context, e *session.Engine, id, answer string) tea.Cmd {
	return func() tea.Msg {
		res, err := e.SubmitAnswer(ctx, id, answer)
		if err != nil {
			return sessionMsg{Err: err}
		}
		return sessionMsg{Session: res.Session}
	}
}

func loadAnalytics(ctx context.Context, e *session.Engine, id string) tea.Cmd {
	return func() tea.Msg {
		a, err := e.Analytics(ctx, id)
		return analyticsMsg{Analytics: a, Err: err}
	}
}
