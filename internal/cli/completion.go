// Package cli implements the Cobra command hierarchy for the fast-yaml CLI
// tool.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// completionCmd generates shell completion scripts for Bash, Zsh, Fish, and
// PowerShell. When run without arguments, it displays installation instructions
// for each supported shell.
var completionCmd = &cobra.Command{
	Use:       "completion [bash|zsh|fish|powershell]",
	Short:     "Generate shell completion scripts",
	Long:      completionLongHelp,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE:      runCompletion,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// completionLongHelp contains installation instructions for each shell.
const completionLongHelp = `Generate shell completion scripts for fast-yaml.

To load completions:

Bash:
  # Load completions in the current shell session:
  $ source <(fast-yaml completion bash)

  # Load completions for every new session (Linux):
  $ fast-yaml completion bash > /etc/bash_completion.d/fast-yaml

  # Load completions for every new session (macOS):
  $ fast-yaml completion bash > $(brew --prefix)/etc/bash_completion.d/fast-yaml

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # Load completions for every new session:
  $ fast-yaml completion zsh > "${fpath[1]}/_fast-yaml"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ fast-yaml completion fish > ~/.config/fish/completions/fast-yaml.fish

PowerShell:
  # Load completions in the current shell session:
  PS> fast-yaml completion powershell | Out-String | Invoke-Expression

  # Load completions for every new session:
  PS> fast-yaml completion powershell >> $PROFILE
`

// runCompletion generates a shell completion script for the specified shell.
// If no shell argument is provided, it prints the help text with installation
// instructions and returns nil.
func runCompletion(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	out := cmd.OutOrStdout()

	switch args[0] {
	case "bash":
		return cmd.Root().GenBashCompletionV2(out, true)
	case "zsh":
		return cmd.Root().GenZshCompletion(out)
	case "fish":
		return cmd.Root().GenFishCompletion(out, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(out)
	default:
		return fmt.Errorf("unsupported shell: %s", args[0])
	}
}
