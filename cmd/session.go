package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/iqfieldbot/internal/session"
	"github.com/abhisek/iqfieldbot/internal/store"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect stored sessions",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a session and its performance report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		e, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cmd.Context()
		s, err := e.Get(ctx, args[0])
		if err != nil {
			return err
		}
		a := session.BuildAnalytics(s, time.Now())

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"session": s, "analytics": a})
		}

		fmt.Fprintf(out, "Session:     %s\n", s.ID)
		if s.UserID != "" {
			fmt.Fprintf(out, "User:        %s\n", s.UserID)
		}
		fmt.Fprintf(out, "State:       %s\n", s.State())
		if s.SelectedField != "" {
			fmt.Fprintf(out, "Field:       %s\n", s.SelectedField.Title())
		}
		fmt.Fprintf(out, "Score:       %d\n", a.TotalScore)
		fmt.Fprintf(out, "Answered:    %d/%d correct (%.0f%%)\n", s.CorrectAnswers, s.TotalQuestions, a.Accuracy*100)
		fmt.Fprintf(out, "Difficulty:  %.1f\n", s.Difficulty)
		fmt.Fprintf(out, "Time spent:  %.0fs\n", a.TimeSpentSeconds)
		if len(a.Strengths) > 0 {
			fmt.Fprintf(out, "Strengths:   %s\n", strings.Join(a.Strengths, ", "))
		}
		if len(a.Weaknesses) > 0 {
			fmt.Fprintf(out, "Weaknesses:  %s\n", strings.Join(a.Weaknesses, ", "))
		}
		for _, r := range a.Recommendations {
			fmt.Fprintf(out, "  - %s\n", r)
		}
		return nil
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := e.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
		return nil
	},
}

// openEngine opens the configured store without a question source; the
// session subcommands never ask questions.
func openEngine(cmd *cobra.Command) (*session.Engine, func(), error) {
	storeCfg := cfg.Store
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		storeCfg.Backend = store.BackendSQLite
		storeCfg.SQLite.Path = p
	}
	if storeCfg.Backend == store.BackendMemory {
		return nil, nil, fmt.Errorf("store.backend is %q; sessions are not persisted", storeCfg.Backend)
	}
	st, err := store.Open(cmd.Context(), storeCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", storeCfg.Backend, err)
	}
	e := session.NewEngine(st, nil, cfg.Session, session.WithLogger(log))
	return e, func() { _ = st.Close() }, nil
}

func init() {
	sessionShowCmd.Flags().Bool("json", false, "Print the raw session and analytics as JSON")

	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
}
