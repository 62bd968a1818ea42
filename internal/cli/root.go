// Package cli implements the Cobra command hierarchy for the fast-yaml CLI
// tool. The root command defined here is the entry point for all
// subcommands and handles cross-cutting concerns like logging
// initialization and error handling.
package cli

import (
	"errors"
	"log/slog"

	"github.com/bug-ops/fast-yaml/internal/config"
	"github.com/bug-ops/fast-yaml/internal/core"
	"github.com/spf13/cobra"
)

// flagValues holds the parsed global flag values, populated by
// config.BindFlags during command initialization and validated in
// PersistentPreRunE.
var flagValues *config.FlagValues

var rootCmd = &cobra.Command{
	Use:   "fast-yaml",
	Short: "Format YAML files in bulk, fast.",
	Long: `fast-yaml discovers, reads, and reformats large batches of YAML files.

It walks a set of paths, applies include/exclude glob filtering and VCS-aware
ignore rules, dispatches the discovered files across a parallel worker pool,
and rewrites changed files atomically when run with --in-place.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ValidateFlags(flagValues, cmd); err != nil {
			return err
		}

		level := config.ResolveLogLevel(flagValues.Verbose, flagValues.Quiet)
		format := config.ResolveLogFormat()
		config.SetupLogging(level, format)

		slog.Debug("logging initialized", "level", level, "format", format)
		return nil
	},
	// When no subcommand is given, delegate to the fmt command.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFmt(cmd, args)
	},
}

func init() {
	flagValues = config.BindFlags(rootCmd)
}

// Execute runs the root command and returns an appropriate exit code.
// If the error is a *core.FatalError or *core.ExitCoded, its exit code is
// used. A generic error returns ExitError (1). Nil returns ExitSuccess (0).
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		return extractExitCode(err)
	}
	return int(core.ExitSuccess)
}

// extractExitCode determines the process exit code from an error.
func extractExitCode(err error) int {
	if err == nil {
		return int(core.ExitSuccess)
	}
	var fatal *core.FatalError
	if errors.As(err, &fatal) {
		return fatal.Code
	}
	var exitCoded *core.ExitCoded
	if errors.As(err, &exitCoded) {
		return int(exitCoded.Code)
	}
	return int(core.ExitError)
}

// RootCmd returns the root cobra.Command for use in testing and subcommand
// registration.
func RootCmd() *cobra.Command {
	return rootCmd
}

// GlobalFlags returns the parsed global flag values. This is available
// after PersistentPreRunE has run. Subcommands use this to access shared
// configuration.
func GlobalFlags() *config.FlagValues {
	return flagValues
}
