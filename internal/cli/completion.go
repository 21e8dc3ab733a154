package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for rnadraw.

Bash:
  $ source <(rnadraw completion bash)

Zsh:
  $ rnadraw completion zsh > "${fpath[1]}/_rnadraw"

Fish:
  $ rnadraw completion fish | source

PowerShell:
  PS> rnadraw completion powershell | Out-String | Invoke-Expression

Besides commands and flags, the scripts complete scheme, palette and
format names.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}
}

// flagValues lists the fixed values of flags shared across commands.
func flagValues() map[string][]string {
	formats := []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON}
	return map[string][]string{
		"scheme":        coloring.SchemeNames(),
		"color-palette": coloring.CategoricalNames(),
		"data-palette":  coloring.ContinuousNames(),
		"format":        formats,
	}
}

// registerCompletions attaches value completion to every command of root
// that has one of the shared flags. The tree command formats differ.
func registerCompletions(root *cobra.Command) {
	values := flagValues()
	var walk func(cmd *cobra.Command)
	walk = func(cmd *cobra.Command) {
		for name, vals := range values {
			if cmd.Flags().Lookup(name) == nil {
				continue
			}
			if name == "format" && cmd.Name() == "tree" {
				vals = []string{formatDOT, pipeline.FormatSVG, pipeline.FormatPDF, pipeline.FormatPNG}
			}
			_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(vals, cobra.ShellCompDirectiveNoFileComp))
		}
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(root)
	_ = root.RegisterFlagCompletionFunc("config", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
	})
}
