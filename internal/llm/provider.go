package llm

import "context"

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive the model's reply text.
type Provider interface {
	// Generate sends the conversation to the LLM and returns the first
	// choice of its reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and tone.
	System string

	// Messages is the conversation history in chronological order.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the limit to the provider, except for Anthropic which
	// requires one and falls back to defaultMaxTokens.
	MaxTokens int

	// Temperature controls randomness.
	// Zero means the provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the LLM's output.
type Response struct {
	// Content is the generated text, untrimmed.
	Content string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

const defaultMaxTokens = 1024
