package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/boxfs/boxfs/internal/sandbox"
)

// DefaultTimeout applies when a call does not specify one.
const DefaultTimeout = 30 * time.Second

// MaxTimeout is the ceiling any single command may run for.
const MaxTimeout = 600 * time.Second

// shellInvocations maps a shell kind to the argv prefix that runs a
// command string under it.
var shellInvocations = map[string][]string{
	"sh":   {"sh", "-c"},
	"bash": {"bash", "-c"},
	"zsh":  {"zsh", "-c"},
	"pwsh": {"pwsh", "-NoProfile", "-NonInteractive", "-Command"},
}

// RunResult carries the outcome of a single command execution.
type RunResult struct {
	Shell    string `json:"shell"`
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// Executor runs one-shot commands under a named shell with a deadline.
// Working directories are confined to the sandbox root when a sandbox
// is attached.
type Executor struct {
	box            *sandbox.Sandbox
	defaultTimeout time.Duration
}

// NewExecutor creates an executor. box may be nil, in which case
// working directories are not confined. timeout <= 0 selects
// DefaultTimeout.
func NewExecutor(box *sandbox.Sandbox, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{box: box, defaultTimeout: timeout}
}

// Shells reports which of the supported shells are installed, in a
// stable order.
func (e *Executor) Shells() []string {
	kinds := []string{"sh", "bash", "zsh", "pwsh"}
	available := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		if _, err := exec.LookPath(shellInvocations[kind][0]); err == nil {
			available = append(available, kind)
		}
	}
	return available
}

// Run executes command under the named shell. A non-zero exit status is
// a successful execution with that exit code; spawn failures and
// timeouts return an error instead.
func (e *Executor) Run(ctx context.Context, shellKind, command, workingDir string, timeout time.Duration) (*RunResult, error) {
	argv, ok := shellInvocations[shellKind]
	if !ok {
		return nil, fmt.Errorf("unsupported shell: %s (supported: %s)", shellKind, strings.Join(supportedKinds(), ", "))
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, fmt.Errorf("shell not installed: %s", shellKind)
	}

	if timeout <= 0 {
		timeout = e.defaultTimeout
	}
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}

	dir, err := e.resolveWorkingDir(workingDir)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], append(argv[1:], command)...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("command timed out after %s", timeout)
	}

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			return nil, fmt.Errorf("failed to run command: %w", runErr)
		}
	}

	return &RunResult{
		Shell:    shellKind,
		ExitCode: exitCode,
		Stdout:   lossyString(stdout.Bytes()),
		Stderr:   lossyString(stderr.Bytes()),
	}, nil
}

// resolveWorkingDir confines the working directory to the sandbox root
// when a sandbox is attached. Empty means the sandbox root (or process
// cwd without one).
func (e *Executor) resolveWorkingDir(workingDir string) (string, error) {
	if e.box == nil {
		return workingDir, nil
	}
	if workingDir == "" {
		return e.box.Root(), nil
	}

	info, err := e.box.Stat(workingDir)
	if err != nil {
		return "", fmt.Errorf("invalid working directory: %w", err)
	}
	if info.Type != "directory" {
		return "", fmt.Errorf("working directory is not a directory: %s", workingDir)
	}
	return filepath.Join(e.box.Root(), info.Path), nil
}

func supportedKinds() []string {
	return []string{"sh", "bash", "zsh", "pwsh"}
}

// lossyString decodes process output, replacing invalid sequences.
func lossyString(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
