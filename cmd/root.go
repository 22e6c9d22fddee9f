package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/iqfieldbot/internal/config"
	"github.com/abhisek/iqfieldbot/internal/logger"
	"github.com/abhisek/iqfieldbot/internal/store"
)

var (
	cfg *config.Config
	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "iqfieldbot",
	Short: "Adaptive intelligence quiz chatbot",
	Long: "IQFieldBot quizzes you in a field of your choice and adapts question " +
		"difficulty to your answers.",
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Assigned here because both functions refer back to rootCmd.
	rootCmd.PersistentPreRunE = initRuntime
	rootCmd.RunE = runPlay

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./config.yaml if present)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides IQFIELDBOT_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (debug, info, warn, error)")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// initRuntime loads configuration and builds the process logger. The
// terminal client only logs to a file so log lines do not corrupt the UI.
func initRuntime(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		c.Log.Level = lvl
	}
	cfg = c

	interactive := cmd == rootCmd || cmd == playCmd
	if interactive && c.Log.File == "" {
		return nil
	}
	l, err := logger.New(logger.Options{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		Console:    !interactive,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log = l
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then store.sqlite.path, then IQFIELDBOT_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Store.SQLite.Path != "" {
		return cfg.Store.SQLite.Path, store.EnsureDir(cfg.Store.SQLite.Path)
	}
	return store.DefaultDBPath()
}
