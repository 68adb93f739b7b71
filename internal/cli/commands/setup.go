// Package commands implements the carrier subcommands.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/xenon-lang/carrier/internal/cli/config"
	"github.com/xenon-lang/carrier/internal/cli/output"
	"github.com/xenon-lang/carrier/internal/toolchain"
)

// newInvoker builds the tool invoker used by build/run/vm. Tests
// replace it with a fake that records calls instead of spawning
// processes.
var newInvoker = func() toolchain.Invoker {
	return toolchain.NewExecInvoker()
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Settings *config.Settings
	Logger   *slog.Logger
	Renderer *output.Renderer
	Invoker  toolchain.Invoker
}

// NewCommandContext bundles the resolved settings, logger, renderer,
// and tool invoker for a command invocation.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	settings := config.GetCurrentSettings()
	mode := output.Mode(settings.OutputFormat)

	return &CommandContext{
		Settings: settings,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
		Invoker:  newInvoker(),
	}
}
