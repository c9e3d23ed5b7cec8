// Root command for the fishbones CLI.
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/fishbones/internal/apply"
	"github.com/mesh-intelligence/fishbones/internal/paths"
	"github.com/mesh-intelligence/fishbones/internal/registry"
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app is the state shared by the subcommands of one root command.
type app struct {
	flags    rootFlags
	config   *viper.Viper
	registry *registry.Registry
	applier  *apply.Applier
}

// newRootCmd creates the top-level "fishbones" command with global flags and
// all subcommands registered, resolving fields through registry.Default.
func newRootCmd() *cobra.Command {
	return newRootCmdWith(registry.Default)
}

// newRootCmdWith is newRootCmd with every field wrapper resolved through reg.
func newRootCmdWith(reg *registry.Registry) *cobra.Command {
	a := &app{registry: reg, applier: apply.NewApplier(reg)}

	root := &cobra.Command{
		Use:   "fishbones",
		Short: "Apply, snapshot and edit object fields by name",
		Long: `Fishbones writes named field values from YAML files into registered
object kinds, stores the resulting field state as snapshots, and reads or
writes single fields of stored snapshots.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := a.resolveConfigDir()
			if err != nil {
				return sysErr("resolve config dir: %w", err)
			}
			cfg, err := loadConfig(configDir)
			if err != nil {
				return sysErr("%w", err)
			}
			a.config = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.fishbones-db)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(newKindsCmd())
	root.AddCommand(a.newApplyCmd())
	root.AddCommand(a.newShowCmd())
	root.AddCommand(a.newGetCmd())
	root.AddCommand(a.newSetCmd())
	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newDeleteCmd())
	root.AddCommand(a.newExportCmd())
	root.AddCommand(a.newImportCmd())

	return root
}

// resolveConfigDir applies --config-dir > FISHBONES_CONFIG_DIR > platform default.
func (a *app) resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(a.flags.configDir)
}

// resolveDataDir applies --data-dir > config.yaml data_dir >
// FISHBONES_DATA_DIR > $(CWD)/.fishbones-db.
func (a *app) resolveDataDir() (string, error) {
	var configValue string
	if a.config != nil {
		configValue = a.config.GetString(cfgKeyDataDir)
	}
	return paths.ResolveDataDir(a.flags.dataDir, configValue)
}
