package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/bug-ops/fast-yaml/internal/config"
	"github.com/spf13/cobra"
)

// configCmd is the parent command for configuration-related subcommands.
// Running `fast-yaml config` with no subcommand prints the help text.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long: `Configuration management commands for fast-yaml.

Use these subcommands to inspect your resolved configuration:

  debug  Show the fully resolved configuration with per-field source annotations`,
}

// configDebugCmd shows the fully resolved configuration with source
// annotations.
var configDebugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Show resolved configuration with source annotations",
	Long: `Displays the complete resolved profile, showing exactly which source
(built-in default, global config, repo config, environment variable, or CLI
flag) provided each field. Useful for diagnosing unexpected configuration
behavior.`,
	RunE: runConfigDebug,
}

func init() {
	configDebugCmd.Flags().String("profile", "", "profile name to debug (default: active profile)")
	configCmd.AddCommand(configDebugCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigDebug implements `fast-yaml config debug`.
func runConfigDebug(cmd *cobra.Command, _ []string) error {
	profileName, _ := cmd.Flags().GetString("profile")

	rc, err := config.Resolve(config.ResolveOptions{
		ProfileName: profileName,
		TargetDir:   flagValues.Dir,
	})
	if err != nil {
		return fmt.Errorf("resolving config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "profile: %s\n\n", rc.ProfileName)

	w := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tSOURCE")

	keys := make([]string, 0, len(rc.Sources))
	for k := range rc.Sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\n", k, rc.Sources[k].String())
	}
	return w.Flush()
}
