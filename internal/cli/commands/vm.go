package commands

import (
	"github.com/spf13/cobra"
	"github.com/xenon-lang/carrier/internal/toolchain"
)

// NewVMCommand creates the vm command.
func NewVMCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vm <wasm-file> [args...]",
		Short: "Execute a compiled WASM file on the Xenon VM",
		Long: `Execute a compiled WASM file on the Xenon VM.

Everything after the wasm file is passed to the VM unmodified and in
order. The exit code is the VM's exit code.`,
		Example: `  # Run a compiled program
  carrier vm out/output.wasm

  # Pass arguments through to the VM
  carrier vm out/output.wasm --trace 42`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVM(cmd, args)
		},
	}

	// Flags after the wasm file belong to the VM, not to carrier.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runVM(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	settings := cmdCtx.Settings

	cmdCtx.Logger.Debug("invoking vm", "tool", settings.VMPath, "args", args)

	code, err := cmdCtx.Invoker.Invoke(cmd.Context(), settings.VMPath, args, settings.ProjectRoot)
	if err != nil {
		return err
	}
	if code != 0 {
		return &toolchain.ExitError{Tool: settings.VMPath, Code: code}
	}
	return nil
}
