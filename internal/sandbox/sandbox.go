package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boxfs/boxfs/internal/config"
	"github.com/boxfs/boxfs/internal/logging"
	"go.uber.org/zap"
)

// Sandbox confines all filesystem operations to a fixed root directory.
// It is immutable after construction and safe for concurrent use; the
// operations themselves take no in-process locks, so concurrent writers
// to the same path race at the OS level.
type Sandbox struct {
	root        string // absolute, symlink-resolved
	maxFileSize int64
	allowWrite  bool
	allowDelete bool
	log         *logging.Logger
}

// New creates a sandbox rooted at cfg.Root, creating the directory if
// it does not exist. The stored root is canonical: absolute with all
// symlinks resolved, so containment checks compare like with like.
func New(cfg config.SandboxConfig, log *logging.Logger) (*Sandbox, error) {
	if log == nil {
		log = logging.NewNop()
	}

	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sandbox root: %w", err)
	}

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sandbox root: %w", err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize sandbox root: %w", err)
	}

	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = config.DefaultMaxFileSize
	}

	log.Info("sandbox initialized",
		zap.String("root", root),
		zap.Int64("max_file_size", maxSize),
		zap.Bool("allow_write", cfg.AllowWrite),
		zap.Bool("allow_delete", cfg.AllowDelete),
	)

	return &Sandbox{
		root:        root,
		maxFileSize: maxSize,
		allowWrite:  cfg.AllowWrite,
		allowDelete: cfg.AllowDelete,
		log:         log,
	}, nil
}

// Root returns the canonical root directory.
func (s *Sandbox) Root() string { return s.root }

// AllowWrite reports whether write-class operations are enabled.
func (s *Sandbox) AllowWrite() bool { return s.allowWrite }

// AllowDelete reports whether delete-class operations are enabled.
func (s *Sandbox) AllowDelete() bool { return s.allowDelete }

// MaxFileSize returns the byte ceiling applied to reads and writes.
func (s *Sandbox) MaxFileSize() int64 { return s.maxFileSize }

// requireWrite gates write-class operations. Checked before any path
// resolution so disabled writes are cheap and side-effect-free.
func (s *Sandbox) requireWrite() error {
	if !s.allowWrite {
		return fmt.Errorf("%w: write operations are disabled", ErrPermission)
	}
	return nil
}

// requireDelete gates delete-class operations.
func (s *Sandbox) requireDelete() error {
	if !s.allowDelete {
		return fmt.Errorf("%w: delete operations are disabled", ErrPermission)
	}
	return nil
}

// rel converts a resolved absolute path back to its root-relative form
// for reporting. The root itself is reported as ".".
func (s *Sandbox) rel(resolved string) string {
	r, err := filepath.Rel(s.root, resolved)
	if err != nil {
		return resolved
	}
	return r
}

func timestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
