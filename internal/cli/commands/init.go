package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xenon-lang/carrier/internal/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init <name>",
		Short: "Initialize a new Xenon project",
		Long: `Initialize a new Xenon project with a starter source file and
default configuration.

This creates:
  - <name>/src/main.xn starter program
  - <name>/carrier.yaml with the default tool paths`,
		Example: `  # Create a new project
  carrier init demo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args[0])
		},
	}
}

func runInit(cmd *cobra.Command, name string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Refuse to scribble over an existing project. Partial state from
	// a failed init is not rolled back.
	if entries, err := os.ReadDir(name); err == nil && len(entries) > 0 {
		return fmt.Errorf("directory %s already exists and is not empty", name)
	}

	if err := os.MkdirAll(name, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", name, err)
	}

	if err := copyTemplate("project", name); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	store := config.New(filepath.Join(name, config.DefaultFileName))
	store.Set(config.KeyProjectName, name)
	if err := store.Save(); err != nil {
		return fmt.Errorf("failed to write project config: %w", err)
	}

	cmdCtx.Logger.Debug("scaffolded project", "name", name)

	r.StatusLine(filepath.Join(name, "src", "main.xn"), "success", "")
	r.StatusLine(store.Path(), "success", "")
	r.Println("")
	r.Success(fmt.Sprintf("Initialized a new Xenon project in %s", name))
	r.Println("")
	r.Println("Next steps:")
	r.Println("  cd " + name)
	r.Println("  carrier run      Interpret the sources under src/")
	r.Println("  carrier build    Compile src/ to out/output.wasm")

	return nil
}
