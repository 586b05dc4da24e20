package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/studysquad/studysquad/internal/logger"
	"github.com/studysquad/studysquad/internal/store"
)

func init() {
	logger.Discard()
}

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: "pertama", Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: "kedua"},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Content != "pertama" {
		t.Fatalf("expected 'pertama', got %q", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Content != "kedua" {
		t.Fatalf("expected 'kedua', got %q", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestEchoProvider_NeverRunsDry(t *testing.T) {
	mock := NewEchoProvider()
	mock.AddResponse(MockResponse{Content: "antri"})

	resp, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "a"}}})
	if err != nil || resp.Content != "antri" {
		t.Fatalf("expected queued reply, got %v, %v", resp, err)
	}

	resp, err = mock.Generate(context.Background(), Request{Messages: []Message{
		{Role: RoleUser, Content: "integral"},
		{Role: RoleAssistant, Content: "jawab"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Content, "integral") {
		t.Fatalf("expected echo of last user message, got %q", resp.Content)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: "ok"},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
	last, ok := mock.LastCall()
	if !ok || last.Messages[0].Content != "hello" {
		t.Fatalf("LastCall() = %+v, %v", last, ok)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "chat")
	if p := PurposeFrom(ctx); p != "chat" {
		t.Fatalf("expected 'chat', got %q", p)
	}
}

func TestSessionIDContext(t *testing.T) {
	ctx := context.Background()
	if id := SessionIDFrom(ctx); id != "" {
		t.Fatalf("expected empty session ID, got %q", id)
	}
	ctx = WithSessionID(ctx, "abc")
	if id := SessionIDFrom(ctx); id != "abc" {
		t.Fatalf("expected 'abc', got %q", id)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "groq without key",
			cfg:     Config{Provider: "groq"},
			wantErr: true,
		},
		{
			name:    "groq with key",
			cfg:     Config{Provider: "groq", Groq: GroqConfig{APIKey: "gsk-test"}},
			wantErr: false,
		},
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "gemini with key",
			cfg:     Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("STUDYSQUAD_LLM_PROVIDER", "")
	t.Setenv("STUDYSQUAD_GROQ_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "gsk-env")
	t.Setenv("STUDYSQUAD_GROQ_MODEL", "llama-3.1-8b-instant")
	t.Setenv("STUDYSQUAD_GROQ_BASE_URL", "")

	cfg := ConfigFromEnv()
	if cfg.Provider != "groq" {
		t.Errorf("provider = %q, want groq", cfg.Provider)
	}
	if cfg.Groq.APIKey != "gsk-env" {
		t.Errorf("api key = %q", cfg.Groq.APIKey)
	}
	if cfg.Groq.Model != "llama-3.1-8b-instant" {
		t.Errorf("model = %q", cfg.Groq.Model)
	}
	if cfg.Groq.BaseURL != defaultGroqBaseURL {
		t.Errorf("base URL = %q", cfg.Groq.BaseURL)
	}

	t.Setenv("STUDYSQUAD_GROQ_API_KEY", "gsk-prefixed")
	t.Setenv("STUDYSQUAD_LLM_PROVIDER", "mock")
	cfg = ConfigFromEnv()
	if cfg.Groq.APIKey != "gsk-prefixed" {
		t.Errorf("prefixed key should win, got %q", cfg.Groq.APIKey)
	}
	if cfg.Provider != "mock" {
		t.Errorf("provider = %q, want mock", cfg.Provider)
	}
}

type recordingRepo struct {
	store.NopEventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: "Mantap!",
		Usage:   Usage{InputTokens: 12, OutputTokens: 3},
	})
	p := WithLogging(mock, "groq", repo)

	ctx := WithSessionID(WithPurpose(context.Background(), "quiz"), "sess-1")
	resp, err := p.Generate(ctx, Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "halo"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "Mantap!" {
		t.Fatalf("content = %q", resp.Content)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Provider != "groq" || ev.Model != "mock" || ev.Purpose != "quiz" || ev.SessionID != "sess-1" {
		t.Fatalf("unexpected event metadata: %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 3 {
		t.Fatalf("unexpected event usage: %+v", ev)
	}
	if !strings.Contains(ev.RequestBody, "[system]\nsys") || !strings.Contains(ev.RequestBody, "[user]\nhalo") {
		t.Fatalf("request body = %q", ev.RequestBody)
	}
	if ev.ResponseBody != "Mantap!" {
		t.Fatalf("response body = %q", ev.ResponseBody)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, "groq", repo)

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success {
		t.Fatalf("expected one failed event, got %+v", repo.events)
	}
	if !strings.Contains(repo.events[0].ErrorMessage, "down") {
		t.Fatalf("error message = %q", repo.events[0].ErrorMessage)
	}
}

func TestLoggingProvider_RepoErrorDoesNotFailCall(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Content: "ok"}), "mock", repo)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "ok" {
		t.Fatalf("content = %q", resp.Content)
	}
}

func TestNewProvider(t *testing.T) {
	t.Run("unknown provider", func(t *testing.T) {
		if _, err := NewProvider(context.Background(), Config{Provider: "nope"}, nil); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing key defers failure to first call", func(t *testing.T) {
		cfg := DefaultConfig()
		p, err := NewProvider(context.Background(), cfg, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != defaultGroqModel {
			t.Fatalf("model = %q", p.ModelID())
		}
		_, err = p.Generate(context.Background(), Request{})
		var unavail *ErrProviderUnavailable
		if !errors.As(err, &unavail) {
			t.Fatalf("expected ErrProviderUnavailable, got %v", err)
		}
		if !strings.Contains(err.Error(), "GROQ_API_KEY") {
			t.Fatalf("error should name the missing variable: %v", err)
		}
	})

	t.Run("mock echoes", func(t *testing.T) {
		p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
		if err != nil || resp.Content == "" {
			t.Fatalf("expected echo reply, got %v, %v", resp, err)
		}
	})

	t.Run("groq with key", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Groq.APIKey = "gsk-test"
		p, err := NewProvider(context.Background(), cfg, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := p.(*LoggingProvider); !ok {
			t.Fatalf("expected logging middleware, got %T", p)
		}
	})
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("llama-3.3-70b-versatile")
	if c == nil {
		t.Fatal("expected pricing for the default Groq model")
	}
	if got := c.Cost(1_000_000, 1_000_000); got < 1.379 || got > 1.381 {
		t.Fatalf("cost = %v, want 1.38", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
