// Init command: creates the config directory, a default config.yaml, and
// the snapshot database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize fishbones storage",
		Long:  "Create configuration and data directories, then initialize the snapshot store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := a.resolveConfigDir()
			if err != nil {
				return sysErr("resolve config dir: %w", err)
			}
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return sysErr("create config directory: %w", err)
			}
			if _, err := writeConfigIfMissing(configDir, a.flags.dataDir); err != nil {
				return sysErr("write config: %w", err)
			}

			s, err := a.attachStore()
			if err != nil {
				return err
			}
			if err := s.Detach(); err != nil {
				return sysErr("finalize storage: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Fishbones initialized successfully")
			return nil
		},
	}
}
