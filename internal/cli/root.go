// Package cli provides the Cobra command structure for gocfail.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gocfail/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gocfail command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gocfail",
		Short: "A compile-fail test harness",
		Long: `gocfail verifies that source files fail to compile in exactly the way
their inline annotations assert.

Each fixture is a source file annotated with the diagnostics it must
produce (//~ ERROR: ..., //~^ WARNING[code], //~| note: ...). gocfail
compiles every fixture with machine-readable diagnostics enabled, checks
that every annotated diagnostic occurred at its annotated line, and that
no unannotated error or warning slipped through.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
