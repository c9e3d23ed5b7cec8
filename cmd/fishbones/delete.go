// Delete command: removes a snapshot.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fishbones/internal/store"
)

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			if err := s.Delete(args[0]); err != nil {
				if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
					return userErr("snapshot %q not found", args[0])
				}
				return sysErr("delete snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
