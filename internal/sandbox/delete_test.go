package sandbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxfs/boxfs/internal/config"
)

func TestDeleteFile(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "doomed.txt", "x")

	result, err := box.DeleteFile("doomed.txt")
	require.NoError(t, err)
	assert.Equal(t, OpDeleted, result.Operation)
	assert.Equal(t, "doomed.txt", result.Path)
	assert.NotEmpty(t, result.Timestamp)

	_, statErr := os.Stat(filepath.Join(box.Root(), "doomed.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteFileErrors(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "dir/inner.txt", "x")

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", "missing.txt", ErrNotFound},
		{"directory", "dir", ErrNotAFile},
		{"traversal", "../escape.txt", ErrTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := box.DeleteFile(tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeleteDisabled(t *testing.T) {
	box := newTestSandboxWith(t, config.SandboxConfig{
		Root:        t.TempDir(),
		AllowWrite:  true,
		AllowDelete: false,
	})
	seed(t, box, "keep.txt", "x")

	_, err := box.DeleteFile("keep.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPermission)

	_, err = box.DeleteDirectory("anything", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPermission)
}

func TestDeleteDirectoryEmpty(t *testing.T) {
	box := newTestSandbox(t)
	require.NoError(t, os.Mkdir(filepath.Join(box.Root(), "empty"), 0o755))

	result, err := box.DeleteDirectory("empty", false)
	require.NoError(t, err)
	assert.Equal(t, OpDeleted, result.Operation)
	require.NotNil(t, result.Recursive)
	assert.False(t, *result.Recursive)
}

func TestDeleteDirectoryNotEmpty(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "full/inner.txt", "x")

	_, err := box.DeleteDirectory("full", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDirectoryNotEmpty)

	// The directory must survive the failed attempt.
	_, statErr := os.Stat(filepath.Join(box.Root(), "full"))
	assert.NoError(t, statErr)
}

func TestDeleteDirectoryRecursive(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "tree/a/b.txt", "x")
	seed(t, box, "tree/c.txt", "x")

	result, err := box.DeleteDirectory("tree", true)
	require.NoError(t, err)
	require.NotNil(t, result.Recursive)
	assert.True(t, *result.Recursive)

	_, statErr := os.Stat(filepath.Join(box.Root(), "tree"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteSandboxRoot(t *testing.T) {
	box := newTestSandbox(t)

	for _, path := range []string{".", ""} {
		_, err := box.DeleteDirectory(path, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPermission)
	}
}

func TestDeleteDirectoryNotADirectory(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "file.txt", "x")

	_, err := box.DeleteDirectory("file.txt", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotADirectory)
}
