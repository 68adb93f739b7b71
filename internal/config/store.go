// Package config manages the carrier.yaml project configuration file:
// a flat string-to-string mapping with a fixed set of default keys
// plus arbitrary user-added keys.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultFileName is the config file carrier looks for in the project root.
const DefaultFileName = "carrier.yaml"

// Recognized keys. The store is schema-free beyond these; any other
// key set via 'carrier config' round-trips untouched.
const (
	KeyCompilerPath    = "compiler_path"
	KeyInterpreterPath = "interpreter_path"
	KeyVMPath          = "vm_path"
	KeyProjectName     = "project_name"
)

var (
	// ErrNotFound is returned by Load when the config file does not exist.
	ErrNotFound = errors.New("config file not found")

	// ErrKeyNotFound is returned by Get for a key that is neither set
	// nor covered by a default.
	ErrKeyNotFound = errors.New("config key not found")
)

// Store is an in-memory view of a project's carrier.yaml, bound to the
// path it was loaded from. Mutations are persisted with Save.
type Store struct {
	path   string
	values map[string]string
}

// Defaults returns the default tool paths, resolvable via PATH.
func Defaults() map[string]string {
	return map[string]string{
		KeyCompilerPath:    "xcc",
		KeyInterpreterPath: "xin",
		KeyVMPath:          "xrun",
	}
}

// New creates a store bound to path, populated with the defaults.
func New(path string) *Store {
	return &Store{path: path, values: Defaults()}
}

// Load reads the config file at path. Values from the file are merged
// over the defaults so the default keys never come back missing.
// Returns ErrNotFound (wrapped with the path) when the file is absent.
func Load(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w (run 'carrier init' first?)", path, ErrNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	values := Defaults()
	for key := range k.All() {
		values[key] = k.String(key)
	}

	return &Store{path: path, values: values}, nil
}

// Path returns the file this store reads from and writes to.
func (s *Store) Path() string { return s.path }

// Get returns the value for key, or ErrKeyNotFound.
func (s *Store) Get(key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%q: %w", key, ErrKeyNotFound)
	}
	return v, nil
}

// Set stores a value in memory. Call Save to persist it.
func (s *Store) Set(key, value string) {
	s.values[key] = value
}

// Keys returns all keys in lexical order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns a copy of the full mapping.
func (s *Store) All() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Save writes the store back to its file, overwriting it. yaml.v3
// marshals maps with sorted keys, so the on-disk order is stable.
func (s *Store) Save() error {
	data, err := yamlv3.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
