package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/iqfieldbot/internal/problemgen"
	"github.com/abhisek/iqfieldbot/internal/store"
	"github.com/abhisek/iqfieldbot/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz session in the terminal",
	RunE:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(c *cobra.Command) {
	c.Flags().String("field", "", "Skip the field picker (math, logic, programming, language, visual-patterns)")
	c.Flags().Int("length", 0, "Questions per session (overrides session.length)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var field problemgen.Field
	if v, _ := cmd.Flags().GetString("field"); v != "" {
		f, err := problemgen.ParseField(v)
		if err != nil {
			return err
		}
		field = f
	}
	if n, _ := cmd.Flags().GetInt("length"); n > 0 {
		cfg.Session.Length = n
	}
	if err := cfg.Session.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	// Local play keeps sessions in memory; only the LLM request log is
	// persisted.
	rt, err := buildRuntime(ctx, cmd, store.Config{Backend: store.BackendMemory}, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	return tui.Run(ctx, tui.Options{
		Engine: rt.engine,
		Field:  field,
	})
}
