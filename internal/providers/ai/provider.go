// Package ai exposes a chat-completion wrapper over an OpenAI-compatible
// endpoint as a tool provider. The filesystem engine has no dependency
// on it.
package ai

import (
	"context"
	"fmt"

	"github.com/boxfs/boxfs/internal/types"
)

// Provider implements inference operations
type Provider struct {
	client *Client
}

// NewProvider creates an AI provider around the given client.
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "ai",
		Name:        "AI Service",
		Description: "Chat completion against a local or remote OpenAI-compatible model",
		Category:    types.CategoryAI,
		Capabilities: []string{
			"complete",
		},
		Tools: []types.Tool{
			{
				ID:          "ai.complete",
				Name:        "Complete",
				Description: "Generate a completion for a prompt.",
				Parameters: []types.Parameter{
					{Name: "prompt", Type: "string", Description: "Prompt to send to the model", Required: true},
					{Name: "model", Type: "string", Description: "Model override", Required: false},
					{Name: "max_tokens", Type: "number", Description: "Maximum tokens to generate", Required: false},
					{Name: "temperature", Type: "number", Description: "Sampling temperature", Required: false},
				},
				Returns: "object",
			},
		},
	}
}

// Execute routes to the appropriate operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	switch toolID {
	case "ai.complete":
		return p.complete(ctx, params)
	default:
		return types.Failure(fmt.Sprintf("unknown tool: %s", toolID)), nil
	}
}

func (p *Provider) complete(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	prompt, ok := params["prompt"].(string)
	if !ok || prompt == "" {
		return types.Failure("prompt cannot be empty"), nil
	}

	opts := Options{}
	if model, ok := params["model"].(string); ok {
		opts.Model = model
	}
	if tokens, ok := params["max_tokens"].(float64); ok {
		opts.MaxTokens = int(tokens)
	}
	if temp, ok := params["temperature"].(float64); ok {
		opts.Temperature = &temp
	}

	completion, err := p.client.Complete(ctx, prompt, opts)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	return types.Success(map[string]interface{}{
		"message": completion.Message,
		"model":   completion.Model,
	}), nil
}
