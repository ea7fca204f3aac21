package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Write replaces the whole content of a file, creating it if absent.
// With createDirs, missing ancestor directories are created; otherwise
// a missing parent fails with ErrNotFound. The result reports whether
// the target existed beforehand.
func (s *Sandbox) Write(filePath, content string, createDirs bool) (*WriteResult, error) {
	if err := s.requireWrite(); err != nil {
		return nil, err
	}

	resolved, err := s.resolve(filePath)
	if err != nil {
		return nil, err
	}
	if err := s.checkWritable(int64(len(content))); err != nil {
		return nil, err
	}

	parent := filepath.Dir(resolved)
	if createDirs {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, fmt.Errorf("%w: failed to create parent directories: %v", ErrIO, err)
		}
	} else if _, err := os.Stat(parent); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: parent directory %s", ErrNotFound, s.rel(parent))
	}

	existed := false
	if info, err := os.Stat(resolved); err == nil {
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrNotAFile, filePath)
		}
		existed = true
	}

	if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("%w: failed to write file: %v", ErrIO, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	op := OpCreated
	if existed {
		op = OpOverwritten
	}
	s.log.Debug("file written", zap.String("path", s.rel(resolved)), zap.String("operation", op), zap.Int64("size", info.Size()))

	return &WriteResult{
		Path:      s.rel(resolved),
		Operation: op,
		Size:      info.Size(),
		Modified:  timestamp(info.ModTime()),
	}, nil
}

// Append adds content to the end of an existing file. The size check is
// against the combined size, not the new content alone.
func (s *Sandbox) Append(filePath, content string) (*WriteResult, error) {
	if err := s.requireWrite(); err != nil {
		return nil, err
	}

	resolved, info, err := s.resolveFile(filePath)
	if err != nil {
		return nil, err
	}
	if err := s.checkAppend(info.Size(), int64(len(content))); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(resolved, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open file for append: %v", ErrIO, err)
	}
	_, werr := f.WriteString(content)
	cerr := f.Close()
	if werr != nil {
		return nil, fmt.Errorf("%w: failed to append: %v", ErrIO, werr)
	}
	if cerr != nil {
		return nil, fmt.Errorf("%w: failed to append: %v", ErrIO, cerr)
	}

	info, err = os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	s.log.Debug("file appended", zap.String("path", s.rel(resolved)), zap.Int64("size", info.Size()))

	return &WriteResult{
		Path:      s.rel(resolved),
		Operation: OpAppended,
		Size:      info.Size(),
		Modified:  timestamp(info.ModTime()),
	}, nil
}

// Update replaces occurrences of a literal search string in a file.
// maxReplacements caps how many occurrences are substituted when
// positive; zero means unbounded. The reported count is the total
// number of occurrences found in the original content, clamped to the
// cap. The post-replacement content is size-checked before commit.
func (s *Sandbox) Update(filePath, search, replace string, caseSensitive bool, maxReplacements int) (*UpdateResult, error) {
	if err := s.requireWrite(); err != nil {
		return nil, err
	}
	if search == "" {
		return nil, fmt.Errorf("search string must not be empty")
	}

	resolved, info, err := s.resolveFile(filePath)
	if err != nil {
		return nil, err
	}
	if err := s.checkReadable(info); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read file: %v", ErrIO, err)
	}
	content, _ := decodeBytes(data)

	var updated string
	var found int
	if caseSensitive {
		found = strings.Count(content, search)
		limit := -1
		if maxReplacements > 0 {
			limit = maxReplacements
		}
		updated = strings.Replace(content, search, replace, limit)
	} else {
		pattern := regexp.MustCompile("(?i)" + regexp.QuoteMeta(search))
		locs := pattern.FindAllStringIndex(content, -1)
		found = len(locs)
		updated = replaceAtLocations(content, replace, locs, maxReplacements)
	}

	replacements := found
	if maxReplacements > 0 && replacements > maxReplacements {
		replacements = maxReplacements
	}

	if err := s.checkWritable(int64(len(updated))); err != nil {
		return nil, err
	}

	if err := os.WriteFile(resolved, []byte(updated), 0o644); err != nil {
		return nil, fmt.Errorf("%w: failed to update file: %v", ErrIO, err)
	}

	info, err = os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	s.log.Debug("file updated",
		zap.String("path", s.rel(resolved)),
		zap.Int("replacements", replacements),
		zap.Bool("case_sensitive", caseSensitive),
	)

	return &UpdateResult{
		Path:         s.rel(resolved),
		Operation:    OpUpdated,
		Replacements: replacements,
		Size:         info.Size(),
		Modified:     timestamp(info.ModTime()),
	}, nil
}

// replaceAtLocations splices replace into content at the first max
// match locations (all of them when max <= 0). The replacement text is
// taken literally; no pattern expansion applies.
func replaceAtLocations(content, replace string, locs [][]int, max int) string {
	if len(locs) == 0 {
		return content
	}
	if max <= 0 || max > len(locs) {
		max = len(locs)
	}

	var b strings.Builder
	b.Grow(len(content))
	prev := 0
	for i := 0; i < max; i++ {
		b.WriteString(content[prev:locs[i][0]])
		b.WriteString(replace)
		prev = locs[i][1]
	}
	b.WriteString(content[prev:])
	return b.String()
}
