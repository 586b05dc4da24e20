package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/studysquad/studysquad/internal/logger"
	"github.com/studysquad/studysquad/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging. name is the configured
// provider name, e.g. "groq".
func WithLogging(p Provider, name string, repo store.EventRepo) Provider {
	if repo == nil {
		repo = store.NopEventRepo{}
	}
	return &LoggingProvider{inner: p, provider: name, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		SessionID:   SessionIDFrom(ctx),
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = resp.Content
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		logger.Warn("LLM request failed",
			"provider", l.provider, "model", data.Model, "purpose", purpose,
			"latency_ms", latencyMs, "err", err)
	} else {
		logger.Debug("LLM request completed",
			"provider", l.provider, "model", data.Model, "purpose", purpose,
			"latency_ms", latencyMs, "input_tokens", data.InputTokens,
			"output_tokens", data.OutputTokens)
	}

	// Don't fail the request if recording fails.
	if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
		logger.Warn("Failed to record LLM request event", "err", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	return b.String()
}
