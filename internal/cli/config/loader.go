package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	intconfig "github.com/xenon-lang/carrier/internal/config"
)

// loggerKey is used to store the logger in the command context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search
// for a carrier.yaml.
const maxUpwardSearchLevels = 10

var (
	configFileUsed  string
	currentSettings *Settings
)

// configExistsIn checks if a carrier config file exists in the directory.
func configExistsIn(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// findProjectRootUpward searches upward from startDir for a carrier
// config file. Returns empty string if not found within
// maxUpwardSearchLevels.
func findProjectRootUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configExistsIn(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's
// not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResetSettings clears loader state. Used by tests.
func ResetSettings() {
	configFileUsed = ""
	currentSettings = nil
}

// LoadSettings loads settings for one invocation.
// Precedence (highest to lowest): flags > env vars > carrier.yaml > defaults.
func LoadSettings(cfgFile string, flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")
	configFileUsed = ""

	// Project root: explicit config file's directory, else upward
	// search from CWD, else CWD itself.
	var projectRoot string
	if cfgFile != "" {
		abs, err := filepath.Abs(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("resolve config path %s: %w", cfgFile, err)
		}
		projectRoot = filepath.Dir(abs)
		cfgFile = abs
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		if root := findProjectRootUpward(cwd); root != "" {
			projectRoot = root
			cfgFile = filepath.Join(root, ConfigFileName)
		} else {
			projectRoot = cwd
		}
	}

	// 1. Defaults
	defaults := map[string]interface{}{
		"src_dir": DefaultSrcDir,
		"out_dir": DefaultOutDir,
		"verbose": false,
		"output":  DefaultOutput,
	}
	for key, value := range intconfig.Defaults() {
		defaults[key] = value
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Project config file, if present
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err == nil {
			if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
			}
			configFileUsed = cfgFile
		}
	}

	// 3. Environment variables: CARRIER_COMPILER_PATH -> compiler_path
	if err := k.Load(env.Provider("CARRIER_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CARRIER_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")

			// The CLI spells the flag --output-format, but the config
			// key is just "output".
			if key == "output_format" {
				return "output", posflag.FlagVal(flags, f)
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	s.ProjectRoot = projectRoot
	s.SrcDir = resolvePathRelativeTo(s.SrcDir, projectRoot)
	s.OutDir = resolvePathRelativeTo(s.OutDir, projectRoot)

	currentSettings = &s
	return &s, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentSettings returns the settings loaded by LoadSettings, or
// defaults relative to the working directory when none were loaded.
func GetCurrentSettings() *Settings {
	if currentSettings != nil {
		return currentSettings
	}
	cwd, _ := os.Getwd()
	tools := intconfig.Defaults()
	return &Settings{
		SrcDir:          filepath.Join(cwd, DefaultSrcDir),
		OutDir:          filepath.Join(cwd, DefaultOutDir),
		CompilerPath:    tools[intconfig.KeyCompilerPath],
		InterpreterPath: tools[intconfig.KeyInterpreterPath],
		VMPath:          tools[intconfig.KeyVMPath],
		OutputFormat:    DefaultOutput,
		ProjectRoot:     cwd,
	}
}

// LoggerKey returns the context key used for storing the logger.
// This lets the commands package retrieve the logger from context
// without an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
