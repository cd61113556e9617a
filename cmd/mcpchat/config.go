package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the client configuration loaded from environment variables.
type Config struct {
	// Provider selection
	Provider string // openai, anthropic, or google
	Model    string

	// API keys
	OpenAIKey    string
	AnthropicKey string
	GoogleKey    string

	// OpenAI-compatible endpoint override
	OpenAIBaseURL string

	// Sampling parameters forwarded to every completion round
	MaxTokens        int
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64

	// SystemPrompt overrides the default role-defining instruction.
	SystemPrompt string
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Provider:         getEnvOrDefault("MCPCHAT_PROVIDER", "openai"),
		Model:            os.Getenv("MCPCHAT_MODEL"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:     os.Getenv("ANTHROPIC_API_KEY"),
		GoogleKey:        os.Getenv("GOOGLE_API_KEY"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		MaxTokens:        getEnvIntOrDefault("MCPCHAT_MAX_TOKENS", 1000),
		Temperature:      getEnvFloatOrDefault("MCPCHAT_TEMPERATURE", 0.7),
		TopP:             getEnvFloatOrDefault("MCPCHAT_TOP_P", 0.7),
		FrequencyPenalty: getEnvFloatOrDefault("MCPCHAT_FREQUENCY_PENALTY", 0.5),
		PresencePenalty:  getEnvFloatOrDefault("MCPCHAT_PRESENCE_PENALTY", 0),
		SystemPrompt:     os.Getenv("MCPCHAT_SYSTEM_PROMPT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "google":
		if c.GoogleKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required for the google provider")
		}
	default:
		return fmt.Errorf("unknown provider: %s (must be openai, anthropic, or google)", c.Provider)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
