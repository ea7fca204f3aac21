// Package shell exposes one-shot command execution under a selectable
// shell as a tool provider.
package shell

import (
	"context"
	"fmt"
	"time"

	"github.com/boxfs/boxfs/internal/types"
)

// Provider implements shell execution operations
type Provider struct {
	executor *Executor
}

// NewProvider creates a shell provider around the given executor.
func NewProvider(executor *Executor) *Provider {
	return &Provider{executor: executor}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "shell",
		Name:        "Shell Service",
		Description: "One-shot command execution with timeout across installed shells",
		Category:    types.CategoryShell,
		Capabilities: []string{
			"run",
			"timeout",
			"multi_shell",
		},
		Tools: []types.Tool{
			{
				ID:          "shell.run",
				Name:        "Run Command",
				Description: "Execute a command under a named shell and capture stdout, stderr and exit code.",
				Parameters: []types.Parameter{
					{Name: "shell", Type: "string", Description: "Shell to use: sh, bash, zsh, or pwsh", Required: true},
					{Name: "command", Type: "string", Description: "Command line to execute", Required: true},
					{Name: "working_dir", Type: "string", Description: "Working directory (relative to sandbox root). Defaults to the root.", Required: false},
					{Name: "timeout_seconds", Type: "number", Description: "Timeout in seconds (default 30, max 600)", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "shell.list",
				Name:        "List Shells",
				Description: "Report which supported shells are installed on this host.",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
		},
	}
}

// Execute routes to the appropriate operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	switch toolID {
	case "shell.run":
		return p.run(ctx, params)
	case "shell.list":
		return p.list()
	default:
		return types.Failure(fmt.Sprintf("unknown tool: %s", toolID)), nil
	}
}

func (p *Provider) run(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	shellKind, ok := params["shell"].(string)
	if !ok || shellKind == "" {
		return types.Failure("shell parameter required"), nil
	}
	command, ok := params["command"].(string)
	if !ok || command == "" {
		return types.Failure("command parameter required"), nil
	}
	workingDir, _ := params["working_dir"].(string)

	var timeout time.Duration
	if secs, ok := params["timeout_seconds"].(float64); ok && secs > 0 {
		timeout = time.Duration(secs * float64(time.Second))
	}

	result, err := p.executor.Run(ctx, shellKind, command, workingDir, timeout)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	return types.Success(map[string]interface{}{
		"shell":     result.Shell,
		"exit_code": result.ExitCode,
		"stdout":    result.Stdout,
		"stderr":    result.Stderr,
	}), nil
}

func (p *Provider) list() (*types.Result, error) {
	shells := p.executor.Shells()
	return types.Success(map[string]interface{}{
		"shells": shells,
		"count":  len(shells),
	}), nil
}
