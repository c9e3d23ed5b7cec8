// Set command: writes one field of a snapshot through its field wrapper and
// saves the result.
package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fishbones/internal/apply"
)

func (a *app) newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <field> <json>",
		Short: "Set one field of a snapshot",
		Long: `Set restores a snapshot, decodes the JSON value into the field's type,
writes it, and saves the snapshot under the same ID.

Example:
  fishbones set 0190f3a2-... Enabled true
  fishbones set 0190f3a2-... Title '"Long tank"'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			s, err := a.attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			_, k, obj, err := a.loadSnapshot(s, id)
			if err != nil {
				return err
			}
			field, err := resolveField(k, args[1])
			if err != nil {
				return err
			}
			w, err := a.registry.WrapperOf(obj, field)
			if err != nil {
				return sysErr("resolve field: %w", err)
			}
			value, err := apply.Decode(w.Descriptor(), json.RawMessage(args[2]))
			if err != nil {
				return userErr("%w", err)
			}
			if err := w.SetValue(obj, value); err != nil {
				return userErr("set %s: %w", field, err)
			}

			snap, err := a.saveObject(s, id, k, obj)
			if err != nil {
				return err
			}
			return a.printSnapshot(cmd, snap, k, obj)
		},
	}
}
