package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when no --config flag is given.
const DefaultFile = "docsum.yaml"

type Config struct {
	// Completion API
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`

	// Request pacing; zero disables the limiter / client timeout.
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`

	// Chunking
	ChunkTokenLimit   int    `yaml:"chunk_token_limit"`
	TokenizerEncoding string `yaml:"tokenizer_encoding"`

	// Prompts
	PromptFile      string `yaml:"prompt_file"`
	MergePromptFile string `yaml:"merge_prompt_file"`

	// Files
	FailureLog   string `yaml:"failure_log"`
	InputPattern string `yaml:"input_pattern"`

	// PDF
	PDFFallbackPdftotext bool `yaml:"pdf_fallback_pdftotext"`

	// serve
	Port           string `yaml:"port"`
	ServerAPIKey   string `yaml:"server_api_key"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`

	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		BaseURL:              "https://api.openai.com/v1",
		Model:                "gpt-4.1",
		MaxTokens:            4096,
		Temperature:          0.3,
		ChunkTokenLimit:      20000,
		TokenizerEncoding:    "cl100k_base",
		PromptFile:           "prompts/default_prompt.txt",
		FailureLog:           "summary_failures.log",
		InputPattern:         "*.pdf",
		PDFFallbackPdftotext: true,
		Port:                 "8090",
		MaxUploadBytes:       50 << 20,
		LogLevel:             "info",
	}
}

// Load builds a Config from defaults, the YAML file at path (if it exists)
// and environment overrides, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.APIKey = envOr("OPENAI_API_KEY", cfg.APIKey)
	cfg.BaseURL = envOr("OPENAI_BASE_URL", cfg.BaseURL)
	cfg.Model = envOr("MODEL_NAME", cfg.Model)
	cfg.MaxTokens = envInt("MAX_TOKENS", cfg.MaxTokens)
	cfg.Temperature = envFloat("TEMPERATURE", cfg.Temperature)
	cfg.RequestsPerMinute = envInt("REQUESTS_PER_MINUTE", cfg.RequestsPerMinute)
	cfg.RequestTimeout = envDuration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.ChunkTokenLimit = envInt("CHUNK_TOKEN_LIMIT", cfg.ChunkTokenLimit)
	cfg.TokenizerEncoding = envOr("TOKENIZER_ENCODING", cfg.TokenizerEncoding)
	cfg.PromptFile = envOr("PROMPT_FILE", cfg.PromptFile)
	cfg.MergePromptFile = envOr("MERGE_PROMPT_FILE", cfg.MergePromptFile)
	cfg.FailureLog = envOr("FAILURE_LOG", cfg.FailureLog)
	cfg.InputPattern = envOr("INPUT_PATTERN", cfg.InputPattern)
	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext)
	cfg.Port = envOr("PORT", cfg.Port)
	cfg.ServerAPIKey = envOr("DOCSUM_API_KEY", cfg.ServerAPIKey)
	cfg.MaxUploadBytes = int64(envInt("MAX_UPLOAD_BYTES", int(cfg.MaxUploadBytes)))
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.TokenizerEncoding == "" {
		cfg.TokenizerEncoding = "cl100k_base"
	}
	if cfg.InputPattern == "" {
		cfg.InputPattern = "*.pdf"
	}
	if cfg.FailureLog == "" {
		cfg.FailureLog = "summary_failures.log"
	}

	return cfg, nil
}

// Validate checks the settings needed to talk to the completion API.
// Token counting alone does not require it.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model name is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2], got %g", c.Temperature)
	}
	if c.ChunkTokenLimit <= 0 {
		return fmt.Errorf("chunk_token_limit must be positive, got %d", c.ChunkTokenLimit)
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute must not be negative")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
