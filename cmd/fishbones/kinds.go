// Kinds command: lists the registered object kinds and their fields.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fishbones/internal/part"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List object kinds and their fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range part.KindNames() {
				k, err := part.LookupKind(name)
				if err != nil {
					return sysErr("%w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k.Name, strings.Join(k.Fields, ", "))
			}
			return nil
		},
	}
}
