package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/bug-ops/fast-yaml/internal/config"
	"github.com/spf13/cobra"
)

// profilesCmd is the parent command for all profile management subcommands.
// Running `fast-yaml profiles` with no subcommand prints the help text.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage fast-yaml configuration profiles",
	Long: `Profile management commands for fast-yaml.

Use these subcommands to discover and inspect your fast-yaml configuration:

  list   Show all available profiles from all config sources
  show   Display the fully resolved configuration for a named profile`,
}

// profilesListCmd lists all profiles available in the current context.
var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles from all config sources",
	Long: `List all profiles that fast-yaml can resolve in the current directory.

Profiles are loaded from three sources (in precedence order):
  1. Built-in defaults
  2. Global config (~/.config/fast-yaml/config.toml)
  3. Repository config (fast-yaml.toml in or above the current directory)

The output shows each profile name, its source, any parent it extends, and a
brief description.`,
	RunE: runProfilesList,
}

// profilesShowCmd resolves and displays a named profile.
var profilesShowCmd = &cobra.Command{
	Use:   "show [profile]",
	Short: "Show the resolved configuration for a profile",
	Long: `Resolve the named profile (following its inheritance chain) and print the
fully merged configuration.

Use --json to get machine-readable JSON output instead of the default table.

If no profile name is given, the active default profile is shown.`,
	Args:              cobra.MaximumNArgs(1),
	RunE:              runProfilesShow,
	ValidArgsFunction: completeProfileNames,
}

func init() {
	profilesShowCmd.Flags().Bool("json", false, "output the resolved profile as JSON instead of a table")

	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)

	rootCmd.AddCommand(profilesCmd)
}

// ── profiles list ──────────────────────────────────────────────────────────

// profileEntry is a row in the profiles list table.
type profileEntry struct {
	name        string
	source      string
	extends     string
	description string
}

// runProfilesList implements `fast-yaml profiles list`.
func runProfilesList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	entries, err := collectProfileEntries()
	if err != nil {
		return fmt.Errorf("collecting profiles: %w", err)
	}

	fmt.Fprintln(out, "Available Profiles:")
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tSOURCE\tEXTENDS\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", e.name, e.source, e.extends, e.description)
	}
	return tw.Flush()
}

// collectProfileEntries builds the list of profile rows by querying all
// config sources. Missing or unreadable config files are silently skipped.
func collectProfileEntries() ([]profileEntry, error) {
	entries := []profileEntry{{
		name:        "default",
		source:      "built-in",
		extends:     "-",
		description: "Built-in defaults for any repository",
	}}

	fromFiles, err := loadAllConfigProfiles()
	if err != nil {
		return nil, err
	}
	for _, ep := range fromFiles {
		if ep.name == "default" {
			continue
		}
		entries = append(entries, ep)
	}
	return entries, nil
}

// loadAllConfigProfiles loads profiles from global and repo config files. It
// returns deduplicated entries annotated with their source. Missing files
// are silently ignored.
func loadAllConfigProfiles() ([]profileEntry, error) {
	var entries []profileEntry
	seen := make(map[string]bool)

	addFromFile := func(path, sourceLabel string) {
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			slog.Debug("skipping config file", "path", path, "err", err)
			return
		}
		for name, p := range cfg.Profile {
			if seen[name] {
				continue
			}
			seen[name] = true

			extends := "-"
			if p.Extends != nil && *p.Extends != "" {
				extends = *p.Extends
			}

			entries = append(entries, profileEntry{
				name:        name,
				source:      sourceLabel,
				extends:     extends,
				description: fmt.Sprintf("Loaded from %s", displayPath(path)),
			})
		}
	}

	globalPath, err := config.DiscoverGlobalConfig()
	if err != nil {
		slog.Debug("global config discovery failed", "err", err)
	} else if globalPath != "" {
		addFromFile(globalPath, "global")
	}

	repoPath, err := config.DiscoverRepoConfig(".")
	if err != nil {
		slog.Debug("repo config discovery failed", "err", err)
	} else if repoPath != "" {
		addFromFile(repoPath, "repo")
	}

	return entries, nil
}

// displayPath converts an absolute path to a shorter relative or
// tilde-prefixed path for display purposes.
func displayPath(path string) string {
	rel, err := filepath.Rel(".", path)
	if err == nil && !strings.HasPrefix(rel, "..") {
		return "./" + rel
	}
	home, err := os.UserHomeDir()
	if err == nil && strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

// ── profiles show ──────────────────────────────────────────────────────────

// runProfilesShow implements `fast-yaml profiles show [profile]`.
func runProfilesShow(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	profileName := "default"
	if len(args) > 0 {
		profileName = args[0]
	}

	resolved, err := config.Resolve(config.ResolveOptions{
		ProfileName: profileName,
		TargetDir:   ".",
	})
	if err != nil {
		available, listErr := availableProfileNames()
		if listErr == nil && len(available) > 0 {
			return fmt.Errorf("%w\n\nAvailable profiles: %s", err, strings.Join(available, ", "))
		}
		return err
	}

	out := cmd.OutOrStdout()

	if asJSON {
		encoded, err := json.MarshalIndent(resolved.Profile, "", "  ")
		if err != nil {
			return fmt.Errorf("serializing profile to JSON: %w", err)
		}
		fmt.Fprintln(out, string(encoded))
		return nil
	}

	fmt.Fprintf(out, "profile: %s\n\n", profileName)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE\tSOURCE")
	writeProfileField(tw, resolved.Sources, "include", resolved.Profile.Include)
	writeProfileField(tw, resolved.Sources, "exclude", resolved.Profile.Exclude)
	writeProfileField(tw, resolved.Sources, "max_depth", resolved.Profile.MaxDepth)
	writeProfileField(tw, resolved.Sources, "indent_width", resolved.Profile.IndentWidth)
	writeProfileField(tw, resolved.Sources, "worker_count", resolved.Profile.WorkerCount)
	writeProfileField(tw, resolved.Sources, "mmap_threshold", resolved.Profile.MmapThreshold)
	writeProfileField(tw, resolved.Sources, "in_place", resolved.Profile.InPlace)
	writeProfileField(tw, resolved.Sources, "dry_run", resolved.Profile.DryRun)
	return tw.Flush()
}

func writeProfileField(w *tabwriter.Writer, sources config.SourceMap, key string, value any) {
	source := "default"
	if s, ok := sources[key]; ok {
		source = s.String()
	}
	fmt.Fprintf(w, "%s\t%v\t%s\n", key, value, source)
}

// availableProfileNames returns the names of all profiles from all config
// sources for use in error messages.
func availableProfileNames() ([]string, error) {
	entries, err := collectProfileEntries()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names, nil
}

// ── shell completions ──────────────────────────────────────────────────────

// completeProfileNames is a Cobra ValidArgsFunction that returns all known
// profile names from both config sources. Errors are silently swallowed so
// completions degrade gracefully.
func completeProfileNames(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names, err := availableProfileNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var filtered []string
	for _, n := range names {
		if strings.HasPrefix(n, toComplete) {
			filtered = append(filtered, n)
		}
	}
	return filtered, cobra.ShellCompDirectiveNoFileComp
}
