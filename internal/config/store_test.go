package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "xcc", d[KeyCompilerPath])
	assert.Equal(t, "xin", d[KeyInterpreterPath])
	assert.Equal(t, "xrun", d[KeyVMPath])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "carrier init")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("compiler_path: [unclosed"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	s := New(path)
	require.NoError(t, s.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), loaded.All())
}

func TestSetGet_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"known key", KeyCompilerPath, "/opt/xenon/bin/xcc"},
		{"custom key", "wasm_opt_level", "3"},
		{"empty value", "notes", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultFileName)
			s := New(path)
			s.Set(tt.key, tt.value)
			require.NoError(t, s.Save())

			loaded, err := Load(path)
			require.NoError(t, err)
			got, err := loaded.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestGet_UnknownKey(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), DefaultFileName))
	_, err := s.Get("no_such_key")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestLoad_DefaultsMergeUnderFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	// Only one key in the file; the other defaults must still resolve.
	require.NoError(t, os.WriteFile(path, []byte("compiler_path: mycc\n"), 0600))

	s, err := Load(path)
	require.NoError(t, err)

	got, err := s.Get(KeyCompilerPath)
	require.NoError(t, err)
	assert.Equal(t, "mycc", got)

	got, err = s.Get(KeyInterpreterPath)
	require.NoError(t, err)
	assert.Equal(t, "xin", got)
}

func TestKeys_LexicalOrder(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), DefaultFileName))
	s.Set("zz_custom", "1")
	s.Set("aa_custom", "2")

	assert.Equal(t, []string{
		"aa_custom", KeyCompilerPath, KeyInterpreterPath, KeyVMPath, "zz_custom",
	}, s.Keys())
}
