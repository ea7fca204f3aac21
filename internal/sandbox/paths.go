package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolve canonicalizes a caller-supplied path against the sandbox root
// and verifies the result stays inside it. This is the single security
// boundary: every operation routes its path argument through here
// before touching the disk.
//
// Home-directory shorthand is expanded first. Relative paths join onto
// the root; absolute paths are taken as given. Canonicalization
// resolves ".", ".." and symlinks to their real target. For paths whose
// tail does not exist yet (create operations), the deepest existing
// ancestor is canonicalized and the remaining segments are re-appended
// before the containment check, so a symlinked ancestor cannot smuggle
// the target outside the root.
func (s *Sandbox) resolve(input string) (string, error) {
	path := input
	if path == "" {
		path = "."
	}

	if path == "~" || strings.HasPrefix(path, "~"+string(os.PathSeparator)) || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrTraversal, input)
		}
		path = filepath.Join(home, path[1:])
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	path = filepath.Clean(path)

	resolved, err := canonicalize(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTraversal, input)
	}

	if !s.contains(resolved) {
		return "", fmt.Errorf("%w: %s", ErrTraversal, input)
	}
	return resolved, nil
}

// contains reports whether p is the root or a proper descendant of it.
// The comparison is component-wise: "/rootx" must not pass for root
// "/root", so the prefix check includes the separator.
func (s *Sandbox) contains(p string) bool {
	if p == s.root {
		return true
	}
	return strings.HasPrefix(p, s.root+string(os.PathSeparator))
}

// canonicalize resolves symlinks in path. When the tail of the path
// does not exist, it peels segments off until an existing ancestor
// resolves, then re-appends the peeled segments. A peeled segment of
// ".." is rejected outright: it could only reorder across a symlink
// boundary that no longer exists to check against.
func canonicalize(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	var pending []string
	current := path
	for {
		parent := filepath.Dir(current)
		if parent == current {
			// Hit the filesystem root without finding anything.
			return "", err
		}
		seg := filepath.Base(current)
		if seg == ".." {
			return "", fmt.Errorf("unresolvable parent reference in %s", path)
		}
		pending = append(pending, seg)
		current = parent

		resolved, rerr := filepath.EvalSymlinks(current)
		if rerr == nil {
			for i := len(pending) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, pending[i])
			}
			return resolved, nil
		}
		if !os.IsNotExist(rerr) {
			return "", rerr
		}
	}
}
