package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"

	// ProviderOpenAI selects the OpenAI chat completions backend.
	ProviderOpenAI = "openai"
	// ProviderAnthropic selects the Anthropic messages backend.
	ProviderAnthropic = "anthropic"
)

// Config holds all application configuration.
// It is built once at start-up and handed to every component that needs it.
type Config struct {
	// Server settings
	Env  string `envconfig:"ENV" default:"development"`
	Port string `envconfig:"PORT" default:"8080"`

	// Security settings
	HSTSMaxAge int    `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	CSPMode    string `envconfig:"CSP_MODE" default:"relaxed"`

	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Model settings
	Provider    string `envconfig:"LLM_PROVIDER" default:"openai"`
	Model       string `envconfig:"LLM_MODEL"`
	SearchModel string `envconfig:"LLM_SEARCH_MODEL" default:"gpt-4o-search-preview"`
	MaxTokens   int64  `envconfig:"LLM_MAX_TOKENS" default:"8192"`
	WebSearch   bool   `envconfig:"WEB_SEARCH" default:"true"`

	// Credentials
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`

	// Pipeline settings
	ResearchConcurrency int    `envconfig:"RESEARCH_CONCURRENCY" default:"4"`
	OutputDir           string `envconfig:"OUTPUT_DIR"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional for development)
	if err := godotenv.Load(); err != nil {
		// Not an error if file doesn't exist (expected in production)
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	// Parse environment variables into config struct
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks values envconfig cannot check on its own.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("invalid LLM_PROVIDER %q: must be %q or %q", c.Provider, ProviderOpenAI, ProviderAnthropic)
	}

	if c.MaxTokens <= 0 {
		return errors.New("LLM_MAX_TOKENS must be positive")
	}

	if c.ResearchConcurrency <= 0 {
		return errors.New("RESEARCH_CONCURRENCY must be positive")
	}

	return nil
}

// APIKey returns the credential for the selected provider.
func (c *Config) APIKey() string {
	if c.Provider == ProviderAnthropic {
		return c.AnthropicAPIKey
	}
	return c.OpenAIAPIKey
}

// BuildCSP constructs Content Security Policy based on mode.
func BuildCSP(mode string) string {
	if mode == "strict" {
		// Production CSP
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			"img-src 'self' data:; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	// Development/relaxed CSP
	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:"
}
