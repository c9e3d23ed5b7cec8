// Show command: prints the restored field state of a snapshot.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fishbones/internal/part"
	"github.com/mesh-intelligence/fishbones/internal/store"
)

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the fields of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			snap, k, obj, err := a.loadSnapshot(s, args[0])
			if err != nil {
				return err
			}
			return a.printSnapshot(cmd, snap, k, obj)
		},
	}
}

// printSnapshot reads the exposed fields of obj back through their wrappers
// and prints them.
func (a *app) printSnapshot(cmd *cobra.Command, snap *store.Snapshot, k part.Kind, obj any) error {
	fields, err := a.applier.Capture(obj, k.Fields)
	if err != nil {
		return sysErr("capture: %w", err)
	}
	w := cmd.OutOrStdout()
	if a.flags.jsonMode {
		return writeJSON(w, snapshotView{
			SnapshotID: snap.SnapshotID,
			Kind:       snap.Kind,
			Fields:     fields,
			CreatedAt:  snap.CreatedAt.Format(time.RFC3339),
			UpdatedAt:  snap.UpdatedAt.Format(time.RFC3339),
		})
	}
	fmt.Fprintf(w, "%s (%s)\n", snap.SnapshotID, snap.Kind)
	return writeFields(w, k, fields)
}
