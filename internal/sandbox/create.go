package sandbox

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// CreateDirectory creates a new directory. The call is strictly
// create-new: an existing target fails with ErrAlreadyExists. With
// parents, missing ancestors are created as well; without, a missing
// parent fails with ErrNotFound.
func (s *Sandbox) CreateDirectory(dirPath string, parents bool) (*MkdirResult, error) {
	if err := s.requireWrite(); err != nil {
		return nil, err
	}

	resolved, err := s.resolve(dirPath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(resolved); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, dirPath)
	}

	if parents {
		err = os.MkdirAll(resolved, 0o755)
	} else {
		err = os.Mkdir(resolved, 0o755)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: parent directory of %s", ErrNotFound, dirPath)
		}
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, dirPath)
		}
		return nil, fmt.Errorf("%w: failed to create directory: %v", ErrIO, err)
	}
	s.log.Info("directory created", zap.String("path", s.rel(resolved)), zap.Bool("parents", parents))

	return &MkdirResult{
		Path:      s.rel(resolved),
		Operation: OpCreated,
		Type:      "directory",
		Timestamp: timestamp(time.Now()),
	}, nil
}
