package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	cliconfig "github.com/xenon-lang/carrier/internal/cli/config"
	"github.com/xenon-lang/carrier/internal/config"
)

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config [key [value]]",
		Short: "Read or update carrier.yaml key-value pairs",
		Long: `Read or update the project configuration.

With no arguments, all keys and values are listed. With a key, its
value is printed. With a key and a value, the value is set and
persisted immediately.

The store is schema-free: any key can be set, not only the recognized
compiler_path, interpreter_path, and vm_path.`,
		Example: `  # List all settings
  carrier config

  # Read one value
  carrier config compiler_path

  # Point the compiler at a local build
  carrier config compiler_path /opt/xenon/bin/xcc`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, args)
		},
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	configPath := cliconfig.GetConfigFileUsed()
	if configPath == "" {
		configPath = filepath.Join(cmdCtx.Settings.ProjectRoot, config.DefaultFileName)
	}

	store, err := config.Load(configPath)
	if err != nil {
		return err
	}

	switch len(args) {
	case 0:
		rows := make([][]string, 0, len(store.Keys()))
		for _, key := range store.Keys() {
			value, _ := store.Get(key)
			rows = append(rows, []string{key, value})
		}
		r.Table([]string{"Key", "Value"}, rows)
		return nil

	case 1:
		value, err := store.Get(args[0])
		if err != nil {
			return err
		}
		r.Println(value)
		return nil

	default:
		store.Set(args[0], args[1])
		if err := store.Save(); err != nil {
			return err
		}
		cmdCtx.Logger.Debug("updated config", "key", args[0], "path", store.Path())
		r.Success("Updated " + args[0])
		return nil
	}
}
