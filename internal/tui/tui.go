// Package tui is the terminal chat client for a quiz session.
package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/iqfieldbot/internal/problemgen"
	"github.com/abhisek/iqfieldbot/internal/session"
)

// Options configures Run.
type Options struct {
	Engine *session.Engine

	// Field skips the field picker when set.
	Field problemgen.Field
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newModel(ctx, opts), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
