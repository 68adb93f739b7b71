// Package config resolves the effective CLI settings from defaults,
// the project's carrier.yaml, CARRIER_* environment variables, and
// command-line flags, in ascending precedence.
package config

import "github.com/xenon-lang/carrier/internal/config"

// Default settings values.
const (
	DefaultSrcDir     = "src"
	DefaultOutDir     = "out"
	DefaultBundleName = "output.xn"
	DefaultWasmName   = "output.wasm"
	DefaultOutput     = "auto" // auto-detect: TTY=text, piped=plain
)

// Settings holds the resolved configuration for a single invocation.
// Tool paths mirror the carrier.yaml store keys so they can be
// overridden per invocation via env vars or flags without editing the
// project file.
type Settings struct {
	SrcDir          string `koanf:"src_dir"`
	OutDir          string `koanf:"out_dir"`
	CompilerPath    string `koanf:"compiler_path"`
	InterpreterPath string `koanf:"interpreter_path"`
	VMPath          string `koanf:"vm_path"`
	ProjectName     string `koanf:"project_name"`
	Verbose         bool   `koanf:"verbose"`
	OutputFormat    string `koanf:"output"`

	// ProjectRoot is the directory the config file was found in, or
	// the working directory when there is none. Relative paths are
	// resolved against it.
	ProjectRoot string `koanf:"-"`
}

// ConfigFileName is the project file the loader searches for.
const ConfigFileName = config.DefaultFileName
