package llm

import (
	"fmt"
	"os"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "groq", "openai", "anthropic", "gemini", "mock"
	Provider string

	Groq      GroqConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
}

// GroqConfig holds Groq-specific configuration.
type GroqConfig struct {
	APIKey  string
	Model   string // Default: "llama-3.3-70b-versatile"
	BaseURL string // Default: "https://api.groq.com/openai/v1"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenAI-compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "groq",
		Groq: GroqConfig{
			Model:   defaultGroqModel,
			BaseURL: defaultGroqBaseURL,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. Provider keys also fall back to the
// vendor's conventional variable, e.g. OPENAI_API_KEY.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("STUDYSQUAD_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	cfg.Groq.APIKey = firstEnv("STUDYSQUAD_GROQ_API_KEY", "GROQ_API_KEY")
	if m := os.Getenv("STUDYSQUAD_GROQ_MODEL"); m != "" {
		cfg.Groq.Model = m
	}
	if u := os.Getenv("STUDYSQUAD_GROQ_BASE_URL"); u != "" {
		cfg.Groq.BaseURL = u
	}

	cfg.OpenAI.APIKey = firstEnv("STUDYSQUAD_OPENAI_API_KEY", "OPENAI_API_KEY")
	if m := os.Getenv("STUDYSQUAD_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("STUDYSQUAD_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	cfg.Anthropic.APIKey = firstEnv("STUDYSQUAD_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	if m := os.Getenv("STUDYSQUAD_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	cfg.Gemini.APIKey = firstEnv("STUDYSQUAD_GEMINI_API_KEY", "GEMINI_API_KEY")
	if m := os.Getenv("STUDYSQUAD_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	return cfg
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "groq":
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required for the groq provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("STUDYSQUAD_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("STUDYSQUAD_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("STUDYSQUAD_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
