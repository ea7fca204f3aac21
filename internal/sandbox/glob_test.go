package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobRecursive(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "a.txt", "x")
	seed(t, box, "src/b.txt", "x")
	seed(t, box, "src/deep/c.txt", "x")
	seed(t, box, "src/d.go", "x")

	result, err := box.Glob(".", "**/*.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "src/b.txt", "src/deep/c.txt"}, result.Paths)
	assert.Equal(t, 3, result.Count)
	assert.False(t, result.Capped)
}

func TestGlobSingleLevel(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "a.txt", "x")
	seed(t, box, "src/b.txt", "x")

	result, err := box.Glob(".", "*.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, result.Paths)
}

func TestGlobFromSubdirectory(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "src/b.txt", "x")
	seed(t, box, "other/c.txt", "x")

	result, err := box.Glob("src", "*.txt")
	require.NoError(t, err)
	// Paths are reported relative to the sandbox root, not the base.
	assert.Equal(t, []string{"src/b.txt"}, result.Paths)
}

func TestGlobMatchesDirectories(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "pkg/inner.txt", "x")

	result, err := box.Glob(".", "pkg")
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg"}, result.Paths)
}

func TestGlobErrors(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "file.txt", "x")

	_, err := box.Glob("missing", "*")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = box.Glob("file.txt", "*")
	assert.ErrorIs(t, err, ErrNotADirectory)

	_, err = box.Glob(".", "[unclosed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid glob pattern")
}
