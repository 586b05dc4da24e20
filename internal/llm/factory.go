package llm

import (
	"context"
	"fmt"

	"github.com/studysquad/studysquad/internal/logger"
	"github.com/studysquad/studysquad/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with logging
// middleware. A missing API key is not an error here: the returned
// provider fails every call with ErrProviderUnavailable instead, so the
// app can start and report the problem in the conversation.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if !knownProvider(cfg.Provider) {
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if verr := cfg.Validate(); verr != nil {
		logger.Warn("LLM provider is not configured", "provider", cfg.Provider, "err", verr)
		base := &unconfiguredProvider{model: cfg.model(), err: verr}
		return WithLogging(base, cfg.Provider, eventRepo), nil
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "groq":
		base, err = NewGroqProvider(cfg.Groq)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewEchoProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → logging → base
	return WithLogging(base, cfg.Provider, eventRepo), nil
}

func knownProvider(name string) bool {
	switch name {
	case "groq", "openai", "anthropic", "gemini", "mock":
		return true
	}
	return false
}

func (c Config) model() string {
	switch c.Provider {
	case "groq":
		return c.Groq.Model
	case "openai":
		return c.OpenAI.Model
	case "anthropic":
		return resolveModel(c.Anthropic.Model, anthropicModels)
	case "gemini":
		return resolveModel(c.Gemini.Model, geminiModels)
	}
	return ""
}

// unconfiguredProvider stands in for a provider whose credentials are
// missing.
type unconfiguredProvider struct {
	model string
	err   error
}

func (p *unconfiguredProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{Err: p.err}
}

func (p *unconfiguredProvider) ModelID() string {
	return p.model
}
