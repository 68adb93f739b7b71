// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/xenon-lang/carrier/internal/cli/output"
	"github.com/xenon-lang/carrier/internal/config"
)

// SetupTestProject creates a temporary project with a default
// carrier.yaml and two source files (a.xn before b.xn lexically).
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	store := config.New(filepath.Join(tmpDir, config.DefaultFileName))
	store.Set(config.KeyProjectName, "testproject")
	if err := store.Save(); err != nil {
		t.Fatalf("failed to write carrier.yaml: %v", err)
	}

	srcDir := filepath.Join(tmpDir, "src")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		t.Fatalf("failed to create src dir: %v", err)
	}

	sources := map[string]string{
		"a.xn": "A",
		"b.xn": "B",
	}
	for name, content := range sources {
		if err := os.WriteFile(filepath.Join(srcDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	return tmpDir
}

// Chdir switches to dir for the duration of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a renderer with an explicit mode and TTY
// state, capturing output in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererPlain creates a test renderer in plain (piped) mode.
func NewTestRendererPlain() *TestRenderer {
	return NewTestRenderer(output.ModePlain, false)
}

// NewTestRendererText creates a test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// Output returns the captured stdout output.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the captured stderr output.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// InvokeCall records one Invoke call made through a FakeInvoker.
type InvokeCall struct {
	Tool string
	Args []string
	Dir  string
}

// FakeInvoker records tool invocations instead of spawning processes.
// It is safe for concurrent use; watch mode re-invokes from a timer
// goroutine.
type FakeInvoker struct {
	mu       sync.Mutex
	Calls    []InvokeCall
	ExitCode int
	Err      error
}

// Invoke records the call and returns the configured exit code/error.
func (f *FakeInvoker) Invoke(_ context.Context, tool string, args []string, dir string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, InvokeCall{Tool: tool, Args: append([]string(nil), args...), Dir: dir})
	if f.Err != nil {
		return -1, f.Err
	}
	return f.ExitCode, nil
}

// CallCount returns the number of recorded calls.
func (f *FakeInvoker) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// Snapshot returns a copy of the recorded calls.
func (f *FakeInvoker) Snapshot() []InvokeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]InvokeCall(nil), f.Calls...)
}
