package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewGroqProvider(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := NewGroqProvider(GroqConfig{APIKey: "gsk-test"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "llama-3.3-70b-versatile" {
			t.Errorf("model = %q, want %q", p.ModelID(), "llama-3.3-70b-versatile")
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewGroqProvider(GroqConfig{Model: "llama-3.1-8b-instant"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("custom model pass-through", func(t *testing.T) {
		p, err := NewGroqProvider(GroqConfig{APIKey: "gsk-test", Model: "llama-3.1-8b-instant"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "llama-3.1-8b-instant" {
			t.Errorf("model = %q, want %q", p.ModelID(), "llama-3.1-8b-instant")
		}
	})
}

func TestGroqProvider_UsesBaseURL(t *testing.T) {
	var path, auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-groq",
			"object": "chat.completion",
			"model":  "llama-3.3-70b-versatile",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "Siap bro!"},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewGroqProvider(GroqConfig{APIKey: "gsk-test", BaseURL: server.URL + "/openai/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "halo"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/openai/v1/chat/completions" {
		t.Errorf("path = %q", path)
	}
	if auth != "Bearer gsk-test" {
		t.Errorf("authorization = %q", auth)
	}
	if resp.Content != "Siap bro!" {
		t.Errorf("content = %q", resp.Content)
	}
}
