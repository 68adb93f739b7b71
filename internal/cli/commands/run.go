package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/xenon-lang/carrier/internal/source"
	"github.com/xenon-lang/carrier/internal/toolchain"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Entry string
	Watch bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}
	cmd := &cobra.Command{
		Use:   "run [file...]",
		Short: "Interpret one or more Xenon files",
		Long: `Run Xenon sources through the interpreter.

Without arguments, all .xn files under the source directory are passed
to the interpreter. Explicit file arguments are used verbatim, in the
order given, with no extension filtering.

The exit code is the interpreter's exit code.`,
		Example: `  # Run everything under src/
  carrier run

  # Run specific files with an entry point
  carrier run lib.xn app.xn --entry app.xn

  # Re-run on every source change
  carrier run --watch`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Entry, "entry", "e", "", "Entry point file passed to the interpreter")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run when source files change")

	return cmd
}

func runRun(cmd *cobra.Command, args []string, opts *RunOptions) error {
	cmdCtx := NewCommandContext(cmd)
	settings := cmdCtx.Settings

	files, err := resolveRunFiles(cmdCtx, args)
	if err != nil {
		return err
	}
	if len(files) == 0 && !opts.Watch {
		cmdCtx.Renderer.Println("No " + source.Ext + " files found to run.")
		return nil
	}

	if opts.Watch {
		return runWatch(cmd, cmdCtx, args, opts)
	}

	code, err := invokeInterpreter(cmd.Context(), cmdCtx, files, opts.Entry)
	if err != nil {
		return err
	}
	if code != 0 {
		return &toolchain.ExitError{Tool: settings.InterpreterPath, Code: code}
	}
	return nil
}

// resolveRunFiles returns the explicit file arguments, verified to
// exist, or everything under the source directory when none are given.
func resolveRunFiles(cmdCtx *CommandContext, args []string) ([]string, error) {
	if len(args) > 0 {
		for _, f := range args {
			if _, err := os.Stat(f); err != nil {
				return nil, &source.ReadError{Path: f, Err: err}
			}
		}
		return args, nil
	}
	return source.Gather(cmdCtx.Settings.SrcDir)
}

func invokeInterpreter(ctx context.Context, cmdCtx *CommandContext, files []string, entry string) (int, error) {
	settings := cmdCtx.Settings

	argv := make([]string, 0, len(files)+2)
	argv = append(argv, files...)
	if entry != "" {
		argv = append(argv, "-e", entry)
	}

	cmdCtx.Logger.Debug("invoking interpreter", "tool", settings.InterpreterPath, "args", argv)
	return cmdCtx.Invoker.Invoke(ctx, settings.InterpreterPath, argv, settings.ProjectRoot)
}

// runWatch runs the interpreter once, then re-runs it whenever a .xn
// file under the source directory changes, until interrupted.
func runWatch(cmd *cobra.Command, cmdCtx *CommandContext, args []string, opts *RunOptions) error {
	settings := cmdCtx.Settings
	r := cmdCtx.Renderer

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDir(watcher, settings.SrcDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", settings.SrcDir, err)
	}

	rerun := func() {
		files, err := resolveRunFiles(cmdCtx, args)
		if err != nil {
			r.Error(err.Error())
			return
		}
		if len(files) == 0 {
			r.Println("No " + source.Ext + " files found to run.")
			return
		}
		code, err := invokeInterpreter(ctx, cmdCtx, files, opts.Entry)
		if err != nil {
			r.Error(err.Error())
			return
		}
		if code != 0 {
			r.Warning(fmt.Sprintf("%s exited with code %d", settings.InterpreterPath, code))
		}
	}

	rerun()
	r.Println("Watching " + settings.SrcDir + " — press Ctrl+C to stop")

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != source.Ext {
				// New directories need watching for future files.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
				continue
			}

			// Debounce bursts of writes from editors.
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				r.Println("Change detected: " + filepath.Base(name))
				rerun()
			})
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.Warning("watch error: " + werr.Error())
		}
	}
}

// watchDir recursively adds a directory tree to the watcher.
func watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if len(info.Name()) > 1 && info.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}
