// Package sandbox implements a file-system operation engine confined to a
// single root directory.
//
// The package is organized into specialized modules:
//   - paths: path resolution and containment (the security boundary)
//   - guard: byte-size ceilings for reads, writes and appends
//   - codec: text decoding with encoding fallback
//   - read: list, read, search, stat
//   - write: write, append, update (pattern replace)
//   - delete: file and directory deletion
//   - create: directory creation
//   - glob: recursive pattern matching
//
// Every operation resolves its caller-supplied path through the sandbox
// before touching the disk; a path that escapes the root fails with
// ErrTraversal. Mutating operations are additionally gated by the
// write/delete permission flags and the size ceiling. All expected
// failures surface as wrapped sentinel errors from errors.go.
package sandbox
