package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rnadraw/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The persistent --verbose flag switches the shared logger to debug level and
// --config selects the TOML file every command reads its defaults from.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "rnadraw draws RNA secondary structures",
		Long: `rnadraw lays out RNA secondary structures given in dot-bracket notation
and draws them as SVG, PNG, PDF or JSON. Residues can be coloured by
nucleotide, pairing, helix, explicit index ranges or numeric per-residue data.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/rnadraw/config.toml)")

	root.AddCommand(c.drawCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.colorsCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.palettesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	registerCompletions(root)
	return root
}
