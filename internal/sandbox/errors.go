package sandbox

import "errors"

// Sentinel errors for expected operation failures. Callers classify with
// errors.Is; messages wrapped around them carry the offending path.
var (
	// ErrTraversal marks a path that escapes the sandbox root. Never retried.
	ErrTraversal = errors.New("access denied: path traversal attempt detected")

	// ErrNotFound marks a missing file or directory.
	ErrNotFound = errors.New("not found")

	// ErrNotAFile marks an operation that requires a regular file.
	ErrNotAFile = errors.New("path is not a file")

	// ErrNotADirectory marks an operation that requires a directory.
	ErrNotADirectory = errors.New("path is not a directory")

	// ErrAlreadyExists marks a create-only conflict.
	ErrAlreadyExists = errors.New("path already exists")

	// ErrPermission marks an operation class disabled by configuration,
	// or an enumeration denied by the operating system.
	ErrPermission = errors.New("permission denied")

	// ErrSizeExceeded marks content or an existing file over the byte ceiling.
	ErrSizeExceeded = errors.New("size limit exceeded")

	// ErrDirectoryNotEmpty marks a non-recursive delete on a populated directory.
	ErrDirectoryNotEmpty = errors.New("directory not empty")

	// ErrIO marks an underlying system call failure not covered above.
	ErrIO = errors.New("io failure")
)
