// Apply command: writes the values of a YAML file into a new object of a
// kind and stores the result as a snapshot.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fishbones/internal/apply"
	"github.com/mesh-intelligence/fishbones/internal/part"
)

func (a *app) newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <kind> <values.yaml>",
		Short: "Apply a YAML values file to a new object and snapshot it",
		Long: `Apply reads the top-level keys of a YAML file and writes each value to the
field of the same name (case-insensitive) on a new object of the given kind.
Values must already have the field's type: floats need a decimal point.

Example:
  fishbones apply subtype tank.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(args[0])
			if err != nil {
				return err
			}
			settings, err := readValuesFile(args[1])
			if err != nil {
				return userErr("read values: %w", err)
			}
			values, err := fieldValues(k, settings)
			if err != nil {
				return err
			}

			obj := k.New()
			if err := a.applier.Apply(obj, values); err != nil {
				var fe *apply.FieldError
				if errors.As(err, &fe) {
					return userErr("apply: %w", err)
				}
				return sysErr("apply: %w", err)
			}

			s, err := a.attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			snap, err := a.saveObject(s, "", k, obj)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return a.printSnapshot(cmd, snap, k, obj)
			}
			fmt.Fprintln(cmd.OutOrStdout(), snap.SnapshotID)
			return nil
		},
	}
}

// fieldValues renames the lowercased Viper keys to the kind's field names.
func fieldValues(k part.Kind, settings map[string]any) (map[string]any, error) {
	values := make(map[string]any, len(settings))
	for key, v := range settings {
		name, err := resolveField(k, key)
		if err != nil {
			return nil, err
		}
		values[name] = v
	}
	return values, nil
}
