package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/boxfs/boxfs/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

// Client talks to an OpenAI-compatible chat-completion endpoint.
type Client struct {
	http *resty.Client
	cfg  config.AIConfig
}

// Options override per-call generation parameters. Zero values fall
// back to the configured defaults; Temperature is a pointer because 0
// is a meaningful setting.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature *float64
}

// Completion is a successful generation.
type Completion struct {
	Message string
	Model   string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewClient builds a client from configuration. Transport-level retries
// ride on retryablehttp underneath resty.
func NewClient(cfg config.AIConfig) *Client {
	retry := retryablehttp.NewClient()
	retry.RetryMax = 2
	retry.Logger = nil

	http := resty.NewWithClient(retry.StandardClient()).
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(120 * time.Second)

	return &Client{http: http, cfg: cfg}
}

// Complete sends prompt as a single user message and returns the first
// choice. An empty prompt is rejected before any network traffic.
func (c *Client) Complete(ctx context.Context, prompt string, opts Options) (*Completion, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	model := opts.Model
	if model == "" {
		model = c.cfg.Model
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.cfg.MaxTokens
	}
	temperature := c.cfg.Temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	var out chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			MaxTokens:   maxTokens,
			Temperature: temperature,
		}).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to inference endpoint: %w", err)
	}
	if resp.IsError() {
		if out.Error != nil && out.Error.Message != "" {
			return nil, fmt.Errorf("inference request failed: %s", out.Error.Message)
		}
		return nil, fmt.Errorf("inference request failed: %s", resp.Status())
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("inference endpoint returned no choices")
	}

	return &Completion{
		Message: out.Choices[0].Message.Content,
		Model:   model,
	}, nil
}
