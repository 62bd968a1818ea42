package cli

import (
	"fmt"
	"os"

	"github.com/bug-ops/fast-yaml/internal/batch"
	"github.com/bug-ops/fast-yaml/internal/core"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [paths...]",
	Short: "Format YAML files in bulk",
	Long: `Discover files under the given paths (or --dir if none are given), apply
include/exclude filtering, and reformat them across a parallel worker pool.

With --check, no files are rewritten: the command reports what would change,
listed as "formatted" in the summary, but still exits zero unless a file
failed to parse. Without --check, pass --in-place to rewrite changed files
atomically on disk.

A single "-" path reads a newline-separated list of paths from stdin instead
of treating the argument list as paths or directories.`,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report what would change without writing it (implies --dry-run)")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, _ := cmd.Flags().GetBool("check")
	if check {
		flagValues.DryRun = true
	}

	cfg, err := flagValues.ToConfig()
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{flagValues.Dir}
	}

	result, err := batch.Run(cmd.Context(), *cfg, paths, os.Stdin)
	if err != nil {
		return err
	}

	if result.Rendered != "" {
		fmt.Fprint(cmd.OutOrStdout(), result.Rendered)
	}

	if result.Code != core.ExitSuccess {
		return core.NewExitCoded(result.Code, "%d file(s) failed to format", result.Summary.Failed)
	}
	return nil
}
