package sandbox

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// List enumerates the immediate children of a directory. Entries that
// fail to stat are reported inline as error entries rather than
// aborting the listing. Directories sort before files, then
// case-insensitive alphabetical within each group.
func (s *Sandbox) List(dirPath string) ([]Entry, error) {
	resolved, err := s.resolve(dirPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: directory %s", ErrNotFound, dirPath)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, dirPath)
	}

	dirents, err := os.ReadDir(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPermission, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		child, err := d.Info()
		if err != nil {
			entries = append(entries, Entry{
				Name:  d.Name(),
				Type:  "error",
				Error: err.Error(),
			})
			continue
		}

		e := Entry{
			Name:     child.Name(),
			Path:     s.rel(resolved + string(os.PathSeparator) + child.Name()),
			Type:     "file",
			Modified: timestamp(child.ModTime()),
		}
		if child.IsDir() {
			e.Type = "directory"
		} else {
			size := child.Size()
			e.Size = &size
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if (entries[i].Type != "directory") != (entries[j].Type != "directory") {
			return entries[i].Type == "directory"
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	return entries, nil
}

// Read returns the decoded content of a file plus metadata. Files over
// the size ceiling fail before any content is loaded.
func (s *Sandbox) Read(filePath string) (*ReadResult, error) {
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

	content, encoding := decodeBytes(data)

	return &ReadResult{
		Path:     s.rel(resolved),
		Content:  content,
		Size:     info.Size(),
		Modified: timestamp(info.ModTime()),
		Encoding: encoding,
		MIME:     mimetype.Detect(data).String(),
	}, nil
}

// Search scans a file line by line for a literal substring. Matches
// record the 1-based line number and the trimmed line text; scanning
// stops after MaxSearchResults matches, but recorded line numbers
// always reflect the true position in the file.
func (s *Sandbox) Search(filePath, needle string, caseSensitive bool) (*SearchResult, error) {
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
	lines := splitLines(content)

	want := needle
	if !caseSensitive {
		want = strings.ToLower(needle)
	}

	matches := make([]Match, 0)
	for i, line := range lines {
		haystack := line
		if !caseSensitive {
			haystack = strings.ToLower(line)
		}
		if strings.Contains(haystack, want) {
			matches = append(matches, Match{
				LineNumber: i + 1,
				Line:       strings.TrimSpace(line),
			})
			if len(matches) >= MaxSearchResults {
				break
			}
		}
	}

	return &SearchResult{
		File:          s.rel(resolved),
		SearchString:  needle,
		CaseSensitive: caseSensitive,
		TotalMatches:  len(matches),
		Matches:       matches,
	}, nil
}

// Stat returns metadata for a single file or directory, including the
// detected MIME type for regular files.
func (s *Sandbox) Stat(path string) (*StatResult, error) {
	resolved, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	result := &StatResult{
		Name:     info.Name(),
		Path:     s.rel(resolved),
		Type:     "file",
		Size:     info.Size(),
		Mode:     info.Mode().String(),
		Modified: timestamp(info.ModTime()),
	}
	if info.IsDir() {
		result.Type = "directory"
	} else if mt, err := mimetype.DetectFile(resolved); err == nil {
		result.MIME = mt.String()
	}

	return result, nil
}

// resolveFile resolves a path and verifies it names an existing regular file.
func (s *Sandbox) resolveFile(filePath string) (string, os.FileInfo, error) {
	resolved, err := s.resolve(filePath)
	if err != nil {
		return "", nil, err
	}

	info, err := os.Stat(resolved)
	if os.IsNotExist(err) {
		return "", nil, fmt.Errorf("%w: file %s", ErrNotFound, filePath)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("%w: %s", ErrNotAFile, filePath)
	}
	if !info.Mode().IsRegular() {
		s.log.Debug("rejecting non-regular file", zap.String("path", filePath))
		return "", nil, fmt.Errorf("%w: %s", ErrNotAFile, filePath)
	}
	return resolved, info, nil
}
