package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for companheiro.

To load completions:

Bash:
  $ source <(companheiro completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ companheiro completion bash > /etc/bash_completion.d/companheiro
  # macOS:
  $ companheiro completion bash > $(brew --prefix)/etc/bash_completion.d/companheiro

Zsh:
  $ companheiro completion zsh > "${fpath[1]}/_companheiro"

Fish:
  $ companheiro completion fish | source

  # To load completions for each session, execute once:
  $ companheiro completion fish > ~/.config/fish/completions/companheiro.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
