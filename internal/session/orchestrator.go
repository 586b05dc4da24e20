package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/studysquad/studysquad/internal/llm"
	"github.com/studysquad/studysquad/internal/logger"
)

var (
	// ErrEmptyInput is returned for blank user input. State is unchanged.
	ErrEmptyInput = errors.New("empty input")

	// ErrCompletion wraps any failure of the model call.
	ErrCompletion = errors.New("completion failed")
)

// Config tunes the model call.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the app.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.9,
	}
}

// Turn is a prepared model call. It captures the mode at preparation time
// so a slow completion is logged under the mode it was asked in.
type Turn struct {
	Request llm.Request
	Mode    Mode
}

// Reply is the outcome of a successful turn.
type Reply struct {
	Text  string
	Delta int
	Score int
}

// Orchestrator runs conversation turns against a Provider.
//
// A turn is split into steps so that a UI can run the model call off its
// update loop: Submit, Request, Complete (no state access), then Commit or
// Fail. HandleUserInput chains them for synchronous callers.
type Orchestrator struct {
	state    *State
	provider llm.Provider
	cfg      Config
}

// NewOrchestrator returns an orchestrator for state.
func NewOrchestrator(state *State, provider llm.Provider, cfg Config) *Orchestrator {
	return &Orchestrator{state: state, provider: provider, cfg: cfg}
}

// State returns the session state the orchestrator drives.
func (o *Orchestrator) State() *State { return o.state }

// Submit appends user text to the transcript.
func (o *Orchestrator) Submit(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyInput
	}
	o.state.append(Message{Role: llm.RoleUser, Content: text})
	return nil
}

// Request prepares a model call from the current transcript.
func (o *Orchestrator) Request(mood Mood) Turn {
	mode := o.state.Mode()
	return Turn{
		Mode: mode,
		Request: llm.Request{
			System:      SystemPrompt(mood, mode),
			Messages:    o.state.history(),
			MaxTokens:   o.cfg.MaxTokens,
			Temperature: o.cfg.Temperature,
		},
	}
}

// Complete calls the provider and returns the trimmed reply. It does not
// touch the session state and is safe to run on another goroutine.
func (o *Orchestrator) Complete(ctx context.Context, turn Turn) (string, error) {
	ctx = llm.WithPurpose(ctx, string(turn.Mode))
	ctx = llm.WithSessionID(ctx, o.state.id)

	resp, err := o.provider.Generate(ctx, turn.Request)
	if err != nil {
		return "", err
	}
	reply := strings.TrimSpace(resp.Content)
	if reply == "" {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty reply")}
	}
	return reply, nil
}

// Commit appends a reply and scores it.
func (o *Orchestrator) Commit(reply string) Reply {
	o.state.append(Message{Role: llm.RoleAssistant, Content: reply})
	delta := Evaluate(reply)
	o.state.addScore(delta)
	return Reply{Text: reply, Delta: delta, Score: o.state.Score()}
}

// Fail records a failed completion as a visible assistant entry and
// returns err wrapped in ErrCompletion. The score is unchanged.
func (o *Orchestrator) Fail(err error) error {
	logger.Warn("Completion failed", "session", o.state.id, "mode", o.state.Mode(), "err", err)
	o.state.append(Message{
		Role:    llm.RoleAssistant,
		Content: FailureMessage(err),
		Failed:  true,
	})
	return fmt.Errorf("%w: %w", ErrCompletion, err)
}

// HandleUserInput runs a full turn for text: append it, ask the model,
// append and score the reply.
func (o *Orchestrator) HandleUserInput(ctx context.Context, text string, mood Mood) (*Reply, error) {
	if err := o.Submit(text); err != nil {
		return nil, err
	}
	return o.Respond(ctx, mood)
}

// Respond asks the model to answer the transcript as it stands. It is used
// after EnterQuizMode, whose request is already in the transcript.
func (o *Orchestrator) Respond(ctx context.Context, mood Mood) (*Reply, error) {
	reply, err := o.Complete(ctx, o.Request(mood))
	if err != nil {
		return nil, o.Fail(err)
	}
	r := o.Commit(reply)
	return &r, nil
}

// FailureMessage is the transcript text shown for a failed completion.
func FailureMessage(err error) string {
	var unavail *llm.ErrProviderUnavailable
	var rl *llm.ErrRateLimit
	switch {
	case errors.As(err, &rl):
		return "⚠️ Bot lagi kebanyakan request, tunggu bentar terus coba lagi ya."
	case errors.Is(err, context.Canceled):
		return "⚠️ Permintaan dibatalin."
	case errors.As(err, &unavail) && unavail.Err != nil:
		return fmt.Sprintf("⚠️ Bot lagi nggak bisa dihubungi: %v", unavail.Err)
	default:
		return fmt.Sprintf("⚠️ Waduh, bot lagi error: %v", err)
	}
}
