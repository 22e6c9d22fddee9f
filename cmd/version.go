package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/iqfieldbot/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print the current version",
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "iqfieldbot", buildinfo.Version())
	},
}
