package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cliconfig "github.com/xenon-lang/carrier/internal/cli/config"
	"github.com/xenon-lang/carrier/internal/cli/testutil"
	"github.com/xenon-lang/carrier/internal/config"
)

func TestConfigCommand_ListShowsAllKeys(t *testing.T) {
	setupFakeProject(t)

	out, err := execute(t, NewConfigCommand())
	require.NoError(t, err)

	for _, key := range []string{"compiler_path", "interpreter_path", "vm_path", "project_name"} {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "xcc")
	assert.Contains(t, out, "xrun")

	// Piped output stays styling-free
	testutil.AssertNoANSI(t, out)
}

func TestConfigCommand_GetDefaultValue(t *testing.T) {
	setupFakeProject(t)

	// compiler_path is not a user-set key in a fresh project; the
	// default must resolve, not fail.
	out, err := execute(t, NewConfigCommand(), "compiler_path")
	require.NoError(t, err)
	assert.Contains(t, out, "xcc")
}

func TestConfigCommand_GetUnknownKey(t *testing.T) {
	setupFakeProject(t)

	_, err := execute(t, NewConfigCommand(), "no_such_key")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrKeyNotFound)
}

func TestConfigCommand_SetPersistsImmediately(t *testing.T) {
	dir, _ := setupFakeProject(t)

	_, err := execute(t, NewConfigCommand(), "compiler_path", "/opt/xenon/xcc")
	require.NoError(t, err)

	// Reload from disk, not from memory
	store, err := config.Load(filepath.Join(dir, config.DefaultFileName))
	require.NoError(t, err)
	got, err := store.Get("compiler_path")
	require.NoError(t, err)
	assert.Equal(t, "/opt/xenon/xcc", got)
}

func TestConfigCommand_SetCustomKey(t *testing.T) {
	setupFakeProject(t)

	_, err := execute(t, NewConfigCommand(), "wasm_opt_level", "3")
	require.NoError(t, err)

	out, err := execute(t, NewConfigCommand(), "wasm_opt_level")
	require.NoError(t, err)
	assert.Contains(t, out, "3")
}

func TestConfigCommand_TooManyArgs(t *testing.T) {
	setupFakeProject(t)

	_, err := execute(t, NewConfigCommand(), "a", "b", "c")
	require.Error(t, err)
}

func TestConfigCommand_MissingConfigFile(t *testing.T) {
	cliconfig.ResetSettings()
	_, err := cliconfig.LoadSettings(filepath.Join(t.TempDir(), config.DefaultFileName), nil)
	// Settings load tolerates a missing file; the config command does not.
	require.NoError(t, err)
	t.Cleanup(cliconfig.ResetSettings)

	_, err = execute(t, NewConfigCommand())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNotFound)
}
