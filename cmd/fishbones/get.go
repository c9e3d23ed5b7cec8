// Get command: reads one field of a snapshot through its field wrapper.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

)

func (a *app) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id> <field>",
		Short: "Get one field of a snapshot",
		Long: `Get restores a snapshot into a new object and reads a single field from it.
The value is printed as JSON.

Example:
  fishbones get 0190f3a2-... AddedMass`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.attachStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			_, k, obj, err := a.loadSnapshot(s, args[0])
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
			v, err := w.GetValue(obj)
			if err != nil {
				return sysErr("get %s: %w", field, err)
			}

			out, err := json.Marshal(v)
			if err != nil {
				return sysErr("marshal value: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
