package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xenon-lang/carrier/internal/cli/config"
	"github.com/xenon-lang/carrier/internal/source"
	"github.com/xenon-lang/carrier/internal/toolchain"
)

// BuildOptions holds options for the build command.
type BuildOptions struct {
	Source string // single source file; skips the bundle step
	Output string // compiled wasm path
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	opts := &BuildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile Xenon sources to WASM",
		Long: `Compile the project's Xenon sources to a WASM binary.

Without --source, all .xn files under the source directory are
concatenated into out/output.xn and that bundle is compiled. With
--source, the given file is compiled directly and no bundle is
written.

The exit code is the compiler's exit code.`,
		Example: `  # Compile everything under src/
  carrier build

  # Compile a single file to a custom location
  carrier build --source examples/hello.xn --output hello.wasm`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Source, "source", "s", "", "Compile a single source file instead of bundling src/")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output WASM file (default: out/output.wasm)")

	return cmd
}

func runBuild(cmd *cobra.Command, opts *BuildOptions) error {
	cmdCtx := NewCommandContext(cmd)
	settings := cmdCtx.Settings
	logger := cmdCtx.Logger

	outputPath := opts.Output
	if outputPath == "" {
		outputPath = filepath.Join(settings.OutDir, config.DefaultWasmName)
	}

	var sourcePath string
	if opts.Source != "" {
		if _, err := os.Stat(opts.Source); err != nil {
			return &source.ReadError{Path: opts.Source, Err: err}
		}
		sourcePath = opts.Source
	} else {
		files, err := source.Gather(settings.SrcDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no %s files found under %s", source.Ext, settings.SrcDir)
		}
		logger.Debug("gathered sources", "count", len(files), "dir", settings.SrcDir)

		sourcePath = filepath.Join(settings.OutDir, config.DefaultBundleName)
		if err := source.WriteBundle(files, sourcePath); err != nil {
			return err
		}
		logger.Debug("wrote bundle", "path", sourcePath)
	}

	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	compilerArgs := []string{sourcePath, "-o", outputPath}
	logger.Debug("invoking compiler", "tool", settings.CompilerPath, "args", compilerArgs)

	code, err := cmdCtx.Invoker.Invoke(cmd.Context(), settings.CompilerPath, compilerArgs, settings.ProjectRoot)
	if err != nil {
		return err
	}
	if code != 0 {
		return &toolchain.ExitError{Tool: settings.CompilerPath, Code: code}
	}

	cmdCtx.Renderer.Success("Build finished -> " + outputPath)
	return nil
}
