package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

const completionHelp = `Generate shell completion scripts for ellipsegen.

Bash:
  $ source <(ellipsegen completion bash)

Zsh:
  $ ellipsegen completion zsh > "${fpath[1]}/_ellipsegen"

Fish:
  $ ellipsegen completion fish > ~/.config/fish/completions/ellipsegen.fish

PowerShell:
  PS> ellipsegen completion powershell | Out-String | Invoke-Expression
`

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  completionHelp,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCompletion(cmd.Root(), cmd.OutOrStdout(), args[0])
		},
	}
}

func writeCompletion(root *cobra.Command, w io.Writer, shell string) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return fmt.Errorf("unsupported shell %q", shell)
}
