// List command: lists stored snapshots, optionally of one kind.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [kind]",
		Short: "List snapshots",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind string
			if len(args) == 1 {
				k, err := lookupKind(args[0])
				if err != nil {
					return err
				}
				kind = k.Name
			}

			s, err := a.attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			snaps, err := s.List(kind)
			if err != nil {
				return sysErr("list snapshots: %w", err)
			}

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				views := make([]snapshotView, 0, len(snaps))
				for _, snap := range snaps {
					views = append(views, snapshotView{
						SnapshotID: snap.SnapshotID,
						Kind:       snap.Kind,
						CreatedAt:  snap.CreatedAt.Format(time.RFC3339),
						UpdatedAt:  snap.UpdatedAt.Format(time.RFC3339),
					})
				}
				return writeJSON(w, views)
			}
			for _, snap := range snaps {
				fmt.Fprintf(w, "%s\t%s\t%s\n", snap.SnapshotID, snap.Kind, snap.CreatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}
