package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// convertCmd is a CLI shell for the YAML-to-other-format converter. The
// converter itself is an external collaborator (spec.md section 1, Out of
// scope): this command registers the surface so `fast-yaml convert` fails
// with a clear "not implemented" error rather than "unknown command".
var convertCmd = &cobra.Command{
	Use:   "convert <path>",
	Short: "Convert a YAML file to another format (external collaborator, not implemented)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("convert: not implemented, this command is reserved for an external converter")
	},
}

func init() {
	convertCmd.Flags().String("to", "json", "target format (json, toml)")
	rootCmd.AddCommand(convertCmd)
}
