package llm

import "fmt"

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.3-70b-versatile"
)

// GroqProvider wraps OpenAIProvider with Groq-specific defaults.
// Groq exposes an OpenAI-compatible API, so the underlying SDK is reused.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultGroqModel
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   model,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, err
	}

	return &GroqProvider{OpenAIProvider: inner}, nil
}
