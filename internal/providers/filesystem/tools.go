package filesystem

import "github.com/boxfs/boxfs/internal/types"

// readTools are always advertised; reads are never permission-gated.
func readTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.list",
			Name:        "List Directory",
			Description: "List all files and directories in a specified path. Returns name, type, size, and modification date for each item.",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path to list (relative to sandbox root). Use '.' for the root itself.", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.read",
			Name:        "Read File",
			Description: "Read the complete contents of a file. Returns the file content, size, and metadata.",
			Parameters: []types.Parameter{
				{Name: "file_path", Type: "string", Description: "Path to the file to read (relative to sandbox root)", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.search",
			Name:        "Search File",
			Description: "Search for a specific string within a file. Returns all matching lines with line numbers.",
			Parameters: []types.Parameter{
				{Name: "file_path", Type: "string", Description: "Path to the file to search (relative to sandbox root)", Required: true},
				{Name: "search_string", Type: "string", Description: "String to search for within the file", Required: true},
				{Name: "case_sensitive", Type: "boolean", Description: "Whether the search should be case-sensitive (default: false)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.stat",
			Name:        "File Info",
			Description: "Get metadata for a file or directory, including MIME type for files.",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path (relative to sandbox root)", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.glob",
			Name:        "Glob",
			Description: "Match files under a directory against a glob pattern. Supports '**' for recursive matching.",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Base directory (relative to sandbox root)", Required: true},
				{Name: "pattern", Type: "string", Description: "Glob pattern (e.g., '**/*.go')", Required: true},
			},
			Returns: "array",
		},
	}
}

// writeTools are advertised only when write operations are enabled.
func writeTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.write",
			Name:        "Write File",
			Description: "Write content to a file. Creates a new file or overwrites an existing one. Optionally creates parent directories.",
			Parameters: []types.Parameter{
				{Name: "file_path", Type: "string", Description: "Path to the file to write (relative to sandbox root)", Required: true},
				{Name: "content", Type: "string", Description: "Content to write to the file", Required: true},
				{Name: "create_dirs", Type: "boolean", Description: "Create parent directories if they don't exist (default: false)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.append",
			Name:        "Append to File",
			Description: "Append content to the end of an existing file.",
			Parameters: []types.Parameter{
				{Name: "file_path", Type: "string", Description: "Path to the file to append to (relative to sandbox root)", Required: true},
				{Name: "content", Type: "string", Description: "Content to append to the file", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.update",
			Name:        "Update File",
			Description: "Update a file by replacing occurrences of a string with another string. Supports case-sensitive and case-insensitive replacement.",
			Parameters: []types.Parameter{
				{Name: "file_path", Type: "string", Description: "Path to the file to update (relative to sandbox root)", Required: true},
				{Name: "search_string", Type: "string", Description: "String to search for and replace", Required: true},
				{Name: "replace_string", Type: "string", Description: "String to replace matches with", Required: true},
				{Name: "case_sensitive", Type: "boolean", Description: "Whether the search should be case-sensitive (default: false)", Required: false},
				{Name: "max_replacements", Type: "number", Description: "Maximum number of replacements to make (default: unlimited)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.create_directory",
			Name:        "Create Directory",
			Description: "Create a new directory. Optionally creates parent directories.",
			Parameters: []types.Parameter{
				{Name: "directory_path", Type: "string", Description: "Path to the directory to create (relative to sandbox root)", Required: true},
				{Name: "parents", Type: "boolean", Description: "Create parent directories if they don't exist (default: false)", Required: false},
			},
			Returns: "object",
		},
	}
}

// deleteTools are advertised only when delete operations are enabled.
func deleteTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.delete_file",
			Name:        "Delete File",
			Description: "Delete a file. This operation is irreversible.",
			Parameters: []types.Parameter{
				{Name: "file_path", Type: "string", Description: "Path to the file to delete (relative to sandbox root)", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.delete_directory",
			Name:        "Delete Directory",
			Description: "Delete a directory. Optionally deletes recursively including all contents.",
			Parameters: []types.Parameter{
				{Name: "directory_path", Type: "string", Description: "Path to the directory to delete (relative to sandbox root)", Required: true},
				{Name: "recursive", Type: "boolean", Description: "Delete directory and all its contents recursively (default: false)", Required: false},
			},
			Returns: "object",
		},
	}
}
