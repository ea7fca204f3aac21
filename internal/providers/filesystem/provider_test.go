package filesystem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxfs/boxfs/internal/config"
	"github.com/boxfs/boxfs/internal/logging"
	"github.com/boxfs/boxfs/internal/sandbox"
	"github.com/boxfs/boxfs/internal/types"
)

func newProvider(t *testing.T, allowWrite, allowDelete bool) *Provider {
	t.Helper()
	box, err := sandbox.New(config.SandboxConfig{
		Root:        t.TempDir(),
		AllowWrite:  allowWrite,
		AllowDelete: allowDelete,
	}, logging.NewNop())
	require.NoError(t, err)
	return NewProvider(box)
}

func toolIDs(def types.Service) []string {
	ids := make([]string, len(def.Tools))
	for i, tool := range def.Tools {
		ids[i] = tool.ID
	}
	return ids
}

func TestDefinitionAdvertisesByPermission(t *testing.T) {
	tests := []struct {
		name        string
		allowWrite  bool
		allowDelete bool
		present     []string
		absent      []string
	}{
		{
			name:        "read only",
			allowWrite:  false,
			allowDelete: false,
			present:     []string{"filesystem.list", "filesystem.read", "filesystem.search"},
			absent:      []string{"filesystem.write", "filesystem.delete_file", "filesystem.delete_directory"},
		},
		{
			name:        "write without delete",
			allowWrite:  true,
			allowDelete: false,
			present:     []string{"filesystem.write", "filesystem.append", "filesystem.update", "filesystem.create_directory"},
			absent:      []string{"filesystem.delete_file", "filesystem.delete_directory"},
		},
		{
			name:        "full access",
			allowWrite:  true,
			allowDelete: true,
			present:     []string{"filesystem.write", "filesystem.delete_file", "filesystem.delete_directory"},
			absent:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := newProvider(t, tt.allowWrite, tt.allowDelete).Definition()
			ids := toolIDs(def)
			for _, id := range tt.present {
				assert.Contains(t, ids, id)
			}
			for _, id := range tt.absent {
				assert.NotContains(t, ids, id)
			}
		})
	}
}

func TestExecuteWriteReadRoundTrip(t *testing.T) {
	p := newProvider(t, true, true)
	ctx := context.Background()

	written, err := p.Execute(ctx, "filesystem.write", map[string]interface{}{
		"file_path":   "notes/hello.txt",
		"content":     "hello round trip",
		"create_dirs": true,
	})
	require.NoError(t, err)
	require.True(t, written.Success)
	assert.Equal(t, "created", written.Data["operation"])

	read, err := p.Execute(ctx, "filesystem.read", map[string]interface{}{
		"file_path": "notes/hello.txt",
	})
	require.NoError(t, err)
	require.True(t, read.Success)
	assert.Equal(t, "hello round trip", read.Data["content"])
	assert.Equal(t, "utf-8", read.Data["encoding"])
}

func TestExecuteSearch(t *testing.T) {
	p := newProvider(t, true, true)
	ctx := context.Background()

	_, err := p.Execute(ctx, "filesystem.write", map[string]interface{}{
		"file_path": "log.txt",
		"content":   "Error: one\nfine\nerror: two\n",
	})
	require.NoError(t, err)

	result, err := p.Execute(ctx, "filesystem.search", map[string]interface{}{
		"file_path":     "log.txt",
		"search_string": "error",
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.Data["totalMatches"])
	assert.Equal(t, false, result.Data["caseSensitive"])
}

func TestExecuteUpdateWithJSONNumbers(t *testing.T) {
	p := newProvider(t, true, true)
	ctx := context.Background()

	_, err := p.Execute(ctx, "filesystem.write", map[string]interface{}{
		"file_path": "f.txt",
		"content":   "aaa",
	})
	require.NoError(t, err)

	// JSON transports deliver max_replacements as float64.
	result, err := p.Execute(ctx, "filesystem.update", map[string]interface{}{
		"file_path":        "f.txt",
		"search_string":    "a",
		"replace_string":   "x",
		"case_sensitive":   true,
		"max_replacements": float64(1),
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 1, result.Data["replacements"])
}

func TestExecuteDeleteDirectory(t *testing.T) {
	p := newProvider(t, true, true)
	ctx := context.Background()

	_, err := p.Execute(ctx, "filesystem.create_directory", map[string]interface{}{
		"directory_path": "stale",
	})
	require.NoError(t, err)

	result, err := p.Execute(ctx, "filesystem.delete_directory", map[string]interface{}{
		"directory_path": "stale",
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "deleted", result.Data["operation"])
	assert.Equal(t, false, result.Data["recursive"])
}

func TestExecuteFailures(t *testing.T) {
	p := newProvider(t, true, true)
	ctx := context.Background()

	tests := []struct {
		name     string
		toolID   string
		params   map[string]interface{}
		contains string
	}{
		{
			name:     "unknown tool",
			toolID:   "filesystem.teleport",
			params:   map[string]interface{}{},
			contains: "unknown tool",
		},
		{
			name:     "missing path",
			toolID:   "filesystem.list",
			params:   map[string]interface{}{},
			contains: "path parameter required",
		},
		{
			name:     "missing content",
			toolID:   "filesystem.write",
			params:   map[string]interface{}{"file_path": "f.txt"},
			contains: "content parameter required",
		},
		{
			name:     "traversal",
			toolID:   "filesystem.read",
			params:   map[string]interface{}{"file_path": "../../etc/passwd"},
			contains: "path traversal",
		},
		{
			name:     "not found",
			toolID:   "filesystem.read",
			params:   map[string]interface{}{"file_path": "missing.txt"},
			contains: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.Execute(ctx, tt.toolID, tt.params)
			require.NoError(t, err)
			require.False(t, result.Success)
			require.NotNil(t, result.Error)
			assert.Contains(t, *result.Error, tt.contains)
		})
	}
}

func TestExecuteDisabledOperation(t *testing.T) {
	p := newProvider(t, false, false)
	ctx := context.Background()

	result, err := p.Execute(ctx, "filesystem.write", map[string]interface{}{
		"file_path": "f.txt",
		"content":   "x",
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "write operations are disabled")
}

func TestExecuteEmptyContentAllowed(t *testing.T) {
	p := newProvider(t, true, true)

	result, err := p.Execute(context.Background(), "filesystem.write", map[string]interface{}{
		"file_path": "empty.txt",
		"content":   "",
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, int64(0), result.Data["size"])
}
