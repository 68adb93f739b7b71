// Package toolchain launches the external Xenon tools (compiler,
// interpreter, VM) and relays their exit status.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Invoker launches an external tool and returns its exit code.
// A nonzero exit code from a successfully started tool is not an
// error at this layer; only failure to start the process is.
type Invoker interface {
	Invoke(ctx context.Context, tool string, args []string, dir string) (int, error)
}

// SpawnError indicates that a tool could not be located or started.
type SpawnError struct {
	Tool string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %q: %v\nHint: check the configured tool paths with 'carrier config'", e.Tool, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError carries a nonzero exit code from an invoked tool so the
// CLI can terminate with the same code.
type ExitError struct {
	Tool string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.Code)
}

// ExecInvoker runs tools as real subprocesses with inherited stdio.
type ExecInvoker struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecInvoker creates an ExecInvoker wired to the process stdio.
func NewExecInvoker() *ExecInvoker {
	return &ExecInvoker{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Invoke starts tool with args in dir and blocks until it exits.
// Stdio is passed through untouched; the tool's output is its own.
func (iv *ExecInvoker) Invoke(ctx context.Context, tool string, args []string, dir string) (int, error) {
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Dir = dir
	cmd.Stdin = iv.Stdin
	cmd.Stdout = iv.Stdout
	cmd.Stderr = iv.Stderr

	if err := cmd.Start(); err != nil {
		return -1, &SpawnError{Tool: tool, Err: err}
	}

	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("waiting for %q: %w", tool, err)
}
