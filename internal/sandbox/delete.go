package sandbox

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DeleteFile removes a single regular file.
func (s *Sandbox) DeleteFile(filePath string) (*DeleteResult, error) {
	if err := s.requireDelete(); err != nil {
		return nil, err
	}

	resolved, _, err := s.resolveFile(filePath)
	if err != nil {
		return nil, err
	}

	rel := s.rel(resolved)
	if err := os.Remove(resolved); err != nil {
		return nil, fmt.Errorf("%w: failed to delete file: %v", ErrIO, err)
	}
	s.log.Info("file deleted", zap.String("path", rel))

	return &DeleteResult{
		Path:      rel,
		Operation: OpDeleted,
		Timestamp: timestamp(time.Now()),
	}, nil
}

// DeleteDirectory removes a directory. Without recursive, a populated
// directory fails with ErrDirectoryNotEmpty so the caller can retry
// with recursive=true. The sandbox root itself is never deletable,
// regardless of flags.
func (s *Sandbox) DeleteDirectory(dirPath string, recursive bool) (*DeleteResult, error) {
	if err := s.requireDelete(); err != nil {
		return nil, err
	}

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
	if resolved == s.root {
		return nil, fmt.Errorf("%w: cannot delete sandbox root", ErrPermission)
	}

	rel := s.rel(resolved)
	if recursive {
		err = os.RemoveAll(resolved)
	} else {
		err = os.Remove(resolved)
	}
	if err != nil {
		if errors.Is(err, syscall.ENOTEMPTY) || errors.Is(err, syscall.EEXIST) {
			return nil, fmt.Errorf("%w: use recursive=true to delete non-empty directories", ErrDirectoryNotEmpty)
		}
		return nil, fmt.Errorf("%w: failed to delete directory: %v", ErrIO, err)
	}
	s.log.Info("directory deleted", zap.String("path", rel), zap.Bool("recursive", recursive))

	return &DeleteResult{
		Path:      rel,
		Operation: OpDeleted,
		Recursive: &recursive,
		Timestamp: timestamp(time.Now()),
	}, nil
}
