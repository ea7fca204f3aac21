package sandbox

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// Glob matches files and directories under a base directory against a
// doublestar pattern ("**" crosses directory boundaries). Matched paths
// are relative to the sandbox root, sorted, and capped at
// MaxGlobResults. Symlinks are not followed.
func (s *Sandbox) Glob(basePath, pattern string) (*GlobResult, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	resolved, err := s.resolve(basePath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: directory %s", ErrNotFound, basePath)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, basePath)
	}

	var (
		mu     sync.Mutex
		paths  []string
		capped bool
	)
	errCapped := errors.New("glob result cap reached")

	conf := fastwalk.Config{Follow: false}
	walkErr := fastwalk.Walk(&conf, resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if path == resolved {
			return nil
		}

		rel, rerr := filepath.Rel(resolved, path)
		if rerr != nil {
			return nil
		}
		ok, merr := doublestar.Match(pattern, filepath.ToSlash(rel))
		if merr != nil || !ok {
			return nil
		}

		mu.Lock()
		defer mu.Unlock()
		if len(paths) >= MaxGlobResults {
			capped = true
			return errCapped
		}
		paths = append(paths, s.rel(path))
		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, errCapped) {
		return nil, fmt.Errorf("%w: %v", ErrIO, walkErr)
	}

	sort.Strings(paths)

	return &GlobResult{
		Pattern: pattern,
		Paths:   paths,
		Count:   len(paths),
		Capped:  capped,
	}, nil
}
