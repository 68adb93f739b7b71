// Package source discovers and bundles Xenon source files.
package source

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Ext is the Xenon source file extension.
const Ext = ".xn"

// ReadError names a source file that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Gather recursively collects all .xn files under root. The result is
// sorted by slash-normalized path so the order is identical across
// platforms and repeated calls. A missing or empty root yields an
// empty slice, not an error.
func Gather(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == Ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return filepath.ToSlash(files[i]) < filepath.ToSlash(files[j])
	})
	return files, nil
}

// Concatenate joins the given files into one blob, in order. Each
// file is preceded by a comment naming it and followed by a newline,
// so tokens from adjacent files never merge.
func Concatenate(paths []string) ([]byte, error) {
	var buf bytes.Buffer
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, &ReadError{Path: p, Err: err}
		}
		fmt.Fprintf(&buf, "// Start of file: %s\n", filepath.ToSlash(p))
		buf.Write(content)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// WriteBundle concatenates paths and writes the result to dest,
// creating dest's directory if needed.
func WriteBundle(paths []string, dest string) error {
	blob, err := Concatenate(paths)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(dest); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(dest, blob, 0600); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
