package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// DefaultMaxFileSize is the byte ceiling applied to reads, writes and appends.
const DefaultMaxFileSize = 10 * 1024 * 1024 // 10 MiB

// Config holds all application configuration. It is built once at
// startup and never mutated afterwards.
type Config struct {
	Server    ServerConfig
	Sandbox   SandboxConfig
	AI        AIConfig
	Shell     ShellConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8090" yaml:"port" toml:"port"`
	Host string `envconfig:"HOST" default:"0.0.0.0" yaml:"host" toml:"host"`
}

// SandboxConfig confines the filesystem engine.
type SandboxConfig struct {
	Root        string `envconfig:"SANDBOX_ROOT" default:"./data" yaml:"root" toml:"root"`
	MaxFileSize int64  `envconfig:"SANDBOX_MAX_FILE_SIZE" default:"10485760" yaml:"max_file_size" toml:"max_file_size"`
	AllowWrite  bool   `envconfig:"SANDBOX_ALLOW_WRITE" default:"true" yaml:"allow_write" toml:"allow_write"`
	AllowDelete bool   `envconfig:"SANDBOX_ALLOW_DELETE" default:"true" yaml:"allow_delete" toml:"allow_delete"`
}

// AIConfig holds inference endpoint configuration.
type AIConfig struct {
	BaseURL     string  `envconfig:"AI_BASE_URL" default:"http://localhost:12434/engines/llama.cpp/v1" yaml:"base_url" toml:"base_url"`
	Model       string  `envconfig:"AI_MODEL" default:"ai/smollm2" yaml:"model" toml:"model"`
	APIKey      string  `envconfig:"AI_API_KEY" default:"not-needed" yaml:"api_key" toml:"api_key"`
	MaxTokens   int     `envconfig:"AI_MAX_TOKENS" default:"500" yaml:"max_tokens" toml:"max_tokens"`
	Temperature float64 `envconfig:"AI_TEMPERATURE" default:"0.7" yaml:"temperature" toml:"temperature"`
}

// ShellConfig holds command execution configuration.
type ShellConfig struct {
	TimeoutSeconds int `envconfig:"SHELL_TIMEOUT" default:"30" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development" toml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"50" yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"100" yaml:"burst" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true" yaml:"enabled" toml:"enabled"`
}

// Load loads configuration from environment variables. If CONFIG_FILE
// is set, the file is applied over the environment values.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8090",
			Host: "0.0.0.0",
		},
		Sandbox: SandboxConfig{
			Root:        "./data",
			MaxFileSize: DefaultMaxFileSize,
			AllowWrite:  true,
			AllowDelete: true,
		},
		AI: AIConfig{
			BaseURL:     "http://localhost:12434/engines/llama.cpp/v1",
			Model:       "ai/smollm2",
			APIKey:      "not-needed",
			MaxTokens:   500,
			Temperature: 0.7,
		},
		Shell: ShellConfig{
			TimeoutSeconds: 30,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           true,
		},
	}
}

// applyFile overlays a YAML or TOML file onto cfg, selected by extension.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", path)
	}
	return nil
}
