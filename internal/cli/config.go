package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnadraw/pkg/config"
)

// configCommand creates the config command for inspecting settings.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprint(stdout, cfg.String())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.ConfigPath
			if path == "" {
				path = config.DefaultPath()
			}
			status := "found"
			if _, err := os.Stat(path); err != nil {
				status = "not found, using defaults"
			}
			printKeyValue("config", path)
			printKeyValue("status", status)
			return nil
		},
	})

	return cmd
}
