// Export and import commands: move snapshots between data directories as JSONL.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fishbones/internal/part"
	"github.com/mesh-intelligence/fishbones/internal/store"
)

func (a *app) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.jsonl>",
		Short: "Write all snapshots to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			n, err := s.Export(args[0])
			if err != nil {
				return sysErr("export snapshots: %w", err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"file": args[0], "count": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d snapshot(s) to %s\n", n, args[0])
			return nil
		},
	}
}

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Load snapshots from a JSONL file written by export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			res, err := s.Import(args[0], a.checkSnapshot)
			if err != nil {
				return userErr("import snapshots: %w", err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"file":    args[0],
					"count":   res.Imported,
					"skipped": res.Skipped,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d snapshot(s) from %s\n", res.Imported, args[0])
			if res.Skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped %d invalid record(s)\n", res.Skipped)
			}
			return nil
		},
	}
}

// checkSnapshot admits a snapshot only if its kind is registered, every field
// is exposed by that kind, and every value restores into a new object.
func (a *app) checkSnapshot(snap *store.Snapshot) error {
	k, err := part.LookupKind(snap.Kind)
	if err != nil {
		return err
	}
	for name := range snap.Fields {
		if !k.HasField(name) {
			return fmt.Errorf("kind %q has no field %q", k.Name, name)
		}
	}
	return a.applier.Restore(k.New(), snap.Fields)
}
