package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// lintCmd is a CLI shell for a YAML content linter (distinct from
// `fast-yaml config lint`, which validates the tool's own configuration).
// A YAML-semantics linter is an external collaborator (spec.md section 1,
// Out of scope): this command registers the surface without implementing
// the linter itself.
var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint YAML files for style issues (external collaborator, not implemented)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("lint: not implemented, this command is reserved for an external linter")
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
