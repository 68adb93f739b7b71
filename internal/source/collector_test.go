package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestGather_RecursiveAndFiltered(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.xn"), "B")
	writeFile(t, filepath.Join(root, "a.xn"), "A")
	writeFile(t, filepath.Join(root, "nested", "deep", "c.xn"), "C")
	writeFile(t, filepath.Join(root, "readme.md"), "not a source file")
	writeFile(t, filepath.Join(root, "nested", "notes.txt"), "also not")

	files, err := Gather(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a.xn"),
		filepath.Join(root, "b.xn"),
		filepath.Join(root, "nested", "deep", "c.xn"),
	}, files)
}

func TestGather_DeterministicAcrossCalls(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "z.xn"), "Z")
	writeFile(t, filepath.Join(root, "m", "a.xn"), "A")
	writeFile(t, filepath.Join(root, "b.xn"), "B")

	first, err := Gather(root)
	require.NoError(t, err)
	second, err := Gather(root)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGather_MissingRootIsEmpty(t *testing.T) {
	files, err := Gather(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestGather_NoMatchesIsEmpty(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "only.txt"), "text")

	files, err := Gather(root)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestConcatenate_OrderAndSeparators(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.xn")
	b := filepath.Join(root, "b.xn")
	writeFile(t, a, "A")
	writeFile(t, b, "B")

	blob, err := Concatenate([]string{a, b})
	require.NoError(t, err)

	want := "// Start of file: " + filepath.ToSlash(a) + "\nA\n" +
		"// Start of file: " + filepath.ToSlash(b) + "\nB\n"
	assert.Equal(t, want, string(blob))
}

func TestConcatenate_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.xn"), "A")
	writeFile(t, filepath.Join(root, "sub", "b.xn"), "B")

	files, err := Gather(root)
	require.NoError(t, err)

	first, err := Concatenate(files)
	require.NoError(t, err)
	second, err := Concatenate(files)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConcatenate_UnreadableFileNamesPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "ghost.xn")

	_, err := Concatenate([]string{missing})
	require.Error(t, err)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, missing, readErr.Path)
}

func TestWriteBundle_CreatesOutputDir(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "main.xn")
	writeFile(t, src, "fn main() -> i32 { return 0; }")

	dest := filepath.Join(root, "out", "output.xn")
	require.NoError(t, WriteBundle([]string{src}, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fn main()")
}
