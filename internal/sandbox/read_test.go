package sandbox

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxfs/boxfs/internal/config"
)

func TestListSortsDirectoriesFirst(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "B.txt", "x")
	seed(t, box, "a.txt", "x")
	seed(t, box, "zeta/inner.txt", "x")
	seed(t, box, "Alpha/inner.txt", "x")

	entries, err := box.List(".")
	require.NoError(t, err)
	require.Len(t, entries, 4)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"Alpha", "zeta", "a.txt", "B.txt"}, names)

	assert.Equal(t, "directory", entries[0].Type)
	assert.Nil(t, entries[0].Size)
	assert.Equal(t, "file", entries[2].Type)
	require.NotNil(t, entries[2].Size)
	assert.Equal(t, int64(1), *entries[2].Size)
}

func TestListNotFound(t *testing.T) {
	box := newTestSandbox(t)

	_, err := box.List("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNotADirectory(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "file.txt", "x")

	_, err := box.List("file.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotADirectory)
}

func TestReadFile(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "docs/note.txt", "hello world\n")

	result, err := box.Read("docs/note.txt")
	require.NoError(t, err)
	assert.Equal(t, "docs/note.txt", result.Path)
	assert.Equal(t, "hello world\n", result.Content)
	assert.Equal(t, int64(12), result.Size)
	assert.Equal(t, "utf-8", result.Encoding)
	assert.NotEmpty(t, result.Modified)
	assert.Contains(t, result.MIME, "text/plain")
}

func TestReadErrors(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "dir/inner.txt", "x")

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing file", "nope.txt", ErrNotFound},
		{"directory", "dir", ErrNotAFile},
		{"traversal", "../nope.txt", ErrTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := box.Read(tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadSizeExceeded(t *testing.T) {
	box := newTestSandboxWith(t, config.SandboxConfig{
		Root:        t.TempDir(),
		MaxFileSize: 8,
		AllowWrite:  true,
	})
	seed(t, box, "big.txt", "well over eight bytes")

	_, err := box.Read("big.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSizeExceeded)
}

func TestSearchCaseSensitivity(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "log.txt", "Error: one\nwarning\nerror: two\n  ERROR trailing  \n")

	sensitive, err := box.Search("log.txt", "error", true)
	require.NoError(t, err)
	assert.Equal(t, 1, sensitive.TotalMatches)
	assert.Equal(t, 3, sensitive.Matches[0].LineNumber)

	insensitive, err := box.Search("log.txt", "error", false)
	require.NoError(t, err)
	assert.Equal(t, 3, insensitive.TotalMatches)
	assert.Equal(t, []int{1, 3, 4}, []int{
		insensitive.Matches[0].LineNumber,
		insensitive.Matches[1].LineNumber,
		insensitive.Matches[2].LineNumber,
	})
	assert.Equal(t, "ERROR trailing", insensitive.Matches[2].Line)
}

func TestSearchNoMatches(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "a.txt", "nothing here\n")

	result, err := box.Search("a.txt", "absent", true)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalMatches)
	assert.Empty(t, result.Matches)
}

func TestSearchCapsResults(t *testing.T) {
	box := newTestSandbox(t)

	var b strings.Builder
	for i := 0; i < MaxSearchResults+50; i++ {
		fmt.Fprintf(&b, "match line %d\n", i)
	}
	seed(t, box, "many.txt", b.String())

	result, err := box.Search("many.txt", "match", true)
	require.NoError(t, err)
	assert.Equal(t, MaxSearchResults, result.TotalMatches)
	assert.Len(t, result.Matches, MaxSearchResults)
	assert.Equal(t, MaxSearchResults, result.Matches[MaxSearchResults-1].LineNumber)
}

func TestStat(t *testing.T) {
	box := newTestSandbox(t)
	seed(t, box, "dir/file.txt", "content")

	file, err := box.Stat("dir/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "file.txt", file.Name)
	assert.Equal(t, "file", file.Type)
	assert.Equal(t, int64(7), file.Size)
	assert.NotEmpty(t, file.Mode)
	assert.Contains(t, file.MIME, "text/plain")

	dir, err := box.Stat("dir")
	require.NoError(t, err)
	assert.Equal(t, "directory", dir.Type)
	assert.Empty(t, dir.MIME)

	_, err = box.Stat("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
