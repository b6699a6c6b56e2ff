// Package cli provides the Cobra command structure for ptedit.
package cli

import (
	"github.com/spf13/cobra"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root ptedit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ptedit",
		Short: "Piece table editing from the command line",
		Long: `ptedit loads files into a piece table and edits them without ever
rewriting the loaded bytes.

Edits come from YAML journals or Lua scripts. Results are written to stdout,
to a separate file, or atomically back in place.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file (.toml, .yaml)")

	// Add subcommands.
	rootCmd.AddCommand(newCatCommand(a))
	rootCmd.AddCommand(newApplyCommand(a))
	rootCmd.AddCommand(newRunCommand(a))
	rootCmd.AddCommand(newStatCommand(a))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
