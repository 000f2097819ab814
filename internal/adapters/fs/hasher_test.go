package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/adapters/fs"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestComputeDirHash_IndependentOfLocation(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"handler.py":           "def handler(event): pass",
		"requirements.txt":     "jinja2",
		"function/function.py": "print('hi')",
	}
	a, b := t.TempDir(), t.TempDir()
	writeTree(t, a, files)
	writeTree(t, b, files)

	h := fs.NewHasher(fs.NewWalker())
	hashA, err := h.ComputeDirHash(a, nil)
	require.NoError(t, err)
	hashB, err := h.ComputeDirHash(b, nil)
	require.NoError(t, err)

	assert.Equal(t, hashA, hashB)
	assert.Len(t, hashA, 16)
}

func TestComputeDirHash_DetectsChanges(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeTree(t, root, map[string]string{"handler.py": "v1"})

	h := fs.NewHasher(fs.NewWalker())
	before, err := h.ComputeDirHash(root, nil)
	require.NoError(t, err)

	writeTree(t, root, map[string]string{"handler.py": "v2"})
	changed, err := h.ComputeDirHash(root, nil)
	require.NoError(t, err)
	assert.NotEqual(t, before, changed)

	writeTree(t, root, map[string]string{"handler.py": "v1"})
	require.NoError(t, os.Rename(filepath.Join(root, "handler.py"), filepath.Join(root, "main.py")))
	renamed, err := h.ComputeDirHash(root, nil)
	require.NoError(t, err)
	assert.NotEqual(t, before, renamed, "paths are part of the hash")
}

func TestComputeDirHash_Ignores(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeTree(t, root, map[string]string{"handler.py": "x"})

	h := fs.NewHasher(fs.NewWalker())
	clean, err := h.ComputeDirHash(root, nil)
	require.NoError(t, err)

	writeTree(t, root, map[string]string{
		"__pycache__/handler.cpython-39.pyc": "bytecode",
		".git/HEAD":                          "ref",
		"notes.tmp":                          "scratch",
	})
	dirty, err := h.ComputeDirHash(root, []string{"*.tmp"})
	require.NoError(t, err)
	assert.Equal(t, clean, dirty)
}

func TestComputeDirHash_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := fs.NewHasher(fs.NewWalker()).ComputeDirHash(filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
}

func TestWalkFiles_Order(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeTree(t, root, map[string]string{"b.txt": "", "a/z.txt": "", "a/y.txt": ""})

	var got []string
	for path, err := range fs.NewWalker().WalkFiles(root, nil) {
		require.NoError(t, err)
		rel, relErr := filepath.Rel(root, path)
		require.NoError(t, relErr)
		got = append(got, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{"a/y.txt", "a/z.txt", "b.txt"}, got)
}

func TestIgnored(t *testing.T) {
	t.Parallel()
	assert.True(t, fs.Ignored("module.pyc", nil))
	assert.True(t, fs.Ignored(".git", nil))
	assert.True(t, fs.Ignored("data.csv", []string{"*.csv"}))
	assert.False(t, fs.Ignored("handler.py", nil))
}
