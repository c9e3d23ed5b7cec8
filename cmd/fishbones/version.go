// Version command for the fishbones CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the CLI release.
const version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/fishbones"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the fishbones version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "fishbones v%s\nmodule: %s\n", version, modulePath)
			return nil
		},
	}
}
