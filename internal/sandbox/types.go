package sandbox

// Operation kinds reported by mutating calls.
const (
	OpCreated     = "created"
	OpOverwritten = "overwritten"
	OpAppended    = "appended"
	OpUpdated     = "updated"
	OpDeleted     = "deleted"
)

// MaxSearchResults caps the number of matches a single search returns.
const MaxSearchResults = 100

// MaxGlobResults caps the number of paths a single glob returns.
const MaxGlobResults = 1000

// Entry describes one child of a listed directory. A per-entry stat
// failure yields Type "error" with the error text instead of aborting
// the listing.
type Entry struct {
	Name     string `json:"name"`
	Path     string `json:"path,omitempty"`
	Type     string `json:"type"`
	Size     *int64 `json:"size,omitempty"`
	Modified string `json:"modified,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ReadResult carries decoded file content plus metadata.
type ReadResult struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
	Encoding string `json:"encoding"`
	MIME     string `json:"mime,omitempty"`
}

// Match is one matching line from a content search.
type Match struct {
	LineNumber int    `json:"lineNumber"`
	Line       string `json:"line"`
}

// SearchResult carries the matches found in a single file.
type SearchResult struct {
	File          string  `json:"file"`
	SearchString  string  `json:"searchString"`
	CaseSensitive bool    `json:"caseSensitive"`
	TotalMatches  int     `json:"totalMatches"`
	Matches       []Match `json:"matches"`
}

// WriteResult describes the outcome of a write or append.
type WriteResult struct {
	Path      string `json:"path"`
	Operation string `json:"operation"`
	Size      int64  `json:"size"`
	Modified  string `json:"modified"`
}

// UpdateResult describes the outcome of a pattern replace.
type UpdateResult struct {
	Path         string `json:"path"`
	Operation    string `json:"operation"`
	Replacements int    `json:"replacements"`
	Size         int64  `json:"size"`
	Modified     string `json:"modified"`
}

// DeleteResult describes a file or directory deletion.
type DeleteResult struct {
	Path      string `json:"path"`
	Operation string `json:"operation"`
	Recursive *bool  `json:"recursive,omitempty"`
	Timestamp string `json:"timestamp"`
}

// MkdirResult describes a directory creation.
type MkdirResult struct {
	Path      string `json:"path"`
	Operation string `json:"operation"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// StatResult carries metadata for a single file or directory.
type StatResult struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
	Mode     string `json:"mode"`
	Modified string `json:"modified"`
	MIME     string `json:"mime,omitempty"`
}

// GlobResult carries the relative paths matched by a pattern.
type GlobResult struct {
	Pattern string   `json:"pattern"`
	Paths   []string `json:"paths"`
	Count   int      `json:"count"`
	Capped  bool     `json:"capped,omitempty"`
}
