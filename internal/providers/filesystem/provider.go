// Package filesystem exposes the sandbox engine as a tool provider.
// It is the only caller of the engine: external operation names and
// JSON argument maps come in, structured results or failures go out.
package filesystem

import (
	"context"
	"fmt"

	"github.com/boxfs/boxfs/internal/sandbox"
	"github.com/boxfs/boxfs/internal/types"
)

// Provider implements sandboxed filesystem operations
type Provider struct {
	box *sandbox.Sandbox
}

// NewProvider creates a filesystem provider backed by the given sandbox.
func NewProvider(box *sandbox.Sandbox) *Provider {
	return &Provider{box: box}
}

// Definition returns service metadata. Write and delete tools are
// omitted entirely when the corresponding permission flag is off, so
// disabled operations are never advertised.
func (p *Provider) Definition() types.Service {
	capabilities := []string{"list", "read", "search", "stat", "glob"}
	tools := readTools()

	if p.box.AllowWrite() {
		capabilities = append(capabilities, "write", "append", "update", "create_directory")
		tools = append(tools, writeTools()...)
	}
	if p.box.AllowDelete() {
		capabilities = append(capabilities, "delete_file", "delete_directory")
		tools = append(tools, deleteTools()...)
	}

	return types.Service{
		ID:           "filesystem",
		Name:         "Filesystem Service",
		Description:  "File and directory operations confined to a sandbox root",
		Category:     types.CategoryFilesystem,
		Capabilities: capabilities,
		Tools:        tools,
	}
}

// Execute routes a tool call to the engine. Expected failures come back
// as structured failure results, never as Go errors.
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	switch toolID {
	case "filesystem.list":
		return p.list(params)
	case "filesystem.read":
		return p.read(params)
	case "filesystem.search":
		return p.search(params)
	case "filesystem.stat":
		return p.stat(params)
	case "filesystem.glob":
		return p.glob(params)
	case "filesystem.write":
		return p.write(params)
	case "filesystem.append":
		return p.append(params)
	case "filesystem.update":
		return p.update(params)
	case "filesystem.create_directory":
		return p.createDirectory(params)
	case "filesystem.delete_file":
		return p.deleteFile(params)
	case "filesystem.delete_directory":
		return p.deleteDirectory(params)
	default:
		return types.Failure(fmt.Sprintf("unknown tool: %s", toolID)), nil
	}
}

func (p *Provider) list(params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return types.Failure("path parameter required"), nil
	}

	entries, err := p.box.List(path)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	return types.Success(map[string]interface{}{
		"path":    path,
		"entries": entries,
		"count":   len(entries),
	}), nil
}

func (p *Provider) read(params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "file_path")
	if !ok {
		return types.Failure("file_path parameter required"), nil
	}

	result, err := p.box.Read(path)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	return types.Success(map[string]interface{}{
		"path":     result.Path,
		"content":  result.Content,
		"size":     result.Size,
		"modified": result.Modified,
		"encoding": result.Encoding,
		"mime":     result.MIME,
	}), nil
}

func (p *Provider) search(params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "file_path")
	if !ok {
		return types.Failure("file_path parameter required"), nil
	}
	needle, ok := stringParam(params, "search_string")
	if !ok {
		return types.Failure("search_string parameter required"), nil
	}
	caseSensitive := boolParam(params, "case_sensitive")

	result, err := p.box.Search(path, needle, caseSensitive)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	return types.Success(map[string]interface{}{
		"file":          result.File,
		"searchString":  result.SearchString,
		"caseSensitive": result.CaseSensitive,
		"totalMatches":  result.TotalMatches,
		"matches":       result.Matches,
	}), nil
}

func (p *Provider) stat(params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return types.Failure("path parameter required"), nil
	}

	result, err := p.box.Stat(path)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	return types.Success(map[string]interface{}{
		"name":     result.Name,
		"path":     result.Path,
		"type":     result.Type,
		"size":     result.Size,
		"mode":     result.Mode,
		"modified": result.Modified,
		"mime":     result.MIME,
	}), nil
}

func (p *Provider) glob(params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return types.Failure("path parameter required"), nil
	}
	pattern, ok := stringParam(params, "pattern")
	if !ok {
		return types.Failure("pattern parameter required"), nil
	}

	result, err := p.box.Glob(path, pattern)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	return types.Success(map[string]interface{}{
		"pattern": result.Pattern,
		"paths":   result.Paths,
		"count":   result.Count,
		"capped":  result.Capped,
	}), nil
}

func (p *Provider) write(params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "file_path")
	if !ok {
		return types.Failure("file_path parameter required"), nil
	}
	content, ok := params["content"].(string)
	if !ok {
		return types.Failure("content parameter required"), nil
	}
	createDirs := boolParam(params, "create_dirs")

	result, err := p.box.Write(path, content, createDirs)
	if err != nil {
		return types.Failure(err.Error()), nil
	}
	return writeResultData(result), nil
}

func (p *Provider) append(params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "file_path")
	if !ok {
		return types.Failure("file_path parameter required"), nil
	}
	content, ok := params["content"].(string)
	if !ok {
		return types.Failure("content parameter required"), nil
	}

	result, err := p.box.Append(path, content)
	if err != nil {
		return types.Failure(err.Error()), nil
	}
	return writeResultData(result), nil
}

func (p *Provider) update(params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "file_path")
	if !ok {
		return types.Failure("file_path parameter required"), nil
	}
	search, ok := stringParam(params, "search_string")
	if !ok {
		return types.Failure("search_string parameter required"), nil
	}
	replace, ok := params["replace_string"].(string)
	if !ok {
		return types.Failure("replace_string parameter required"), nil
	}
	caseSensitive := boolParam(params, "case_sensitive")
	maxReplacements := intParam(params, "max_replacements")

	result, err := p.box.Update(path, search, replace, caseSensitive, maxReplacements)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	return types.Success(map[string]interface{}{
		"path":         result.Path,
		"operation":    result.Operation,
		"replacements": result.Replacements,
		"size":         result.Size,
		"modified":     result.Modified,
	}), nil
}

func (p *Provider) createDirectory(params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "directory_path")
	if !ok {
		return types.Failure("directory_path parameter required"), nil
	}
	parents := boolParam(params, "parents")

	result, err := p.box.CreateDirectory(path, parents)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	return types.Success(map[string]interface{}{
		"path":      result.Path,
		"operation": result.Operation,
		"type":      result.Type,
		"timestamp": result.Timestamp,
	}), nil
}

func (p *Provider) deleteFile(params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "file_path")
	if !ok {
		return types.Failure("file_path parameter required"), nil
	}

	result, err := p.box.DeleteFile(path)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	return types.Success(map[string]interface{}{
		"path":      result.Path,
		"operation": result.Operation,
		"timestamp": result.Timestamp,
	}), nil
}

func (p *Provider) deleteDirectory(params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "directory_path")
	if !ok {
		return types.Failure("directory_path parameter required"), nil
	}
	recursive := boolParam(params, "recursive")

	result, err := p.box.DeleteDirectory(path, recursive)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	return types.Success(map[string]interface{}{
		"path":      result.Path,
		"operation": result.Operation,
		"recursive": recursive,
		"timestamp": result.Timestamp,
	}), nil
}

func writeResultData(result *sandbox.WriteResult) *types.Result {
	return types.Success(map[string]interface{}{
		"path":      result.Path,
		"operation": result.Operation,
		"size":      result.Size,
		"modified":  result.Modified,
	})
}

// stringParam extracts a required non-empty string argument.
func stringParam(params map[string]interface{}, key string) (string, bool) {
	v, ok := params[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// boolParam extracts an optional boolean argument, defaulting to false.
func boolParam(params map[string]interface{}, key string) bool {
	v, _ := params[key].(bool)
	return v
}

// intParam extracts an optional numeric argument, defaulting to zero.
// JSON transports deliver numbers as float64.
func intParam(params map[string]interface{}, key string) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
