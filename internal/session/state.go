// Package session holds the in-memory state of one study session and the
// logic that moves it forward: mode switches, model turns, and scoring.
package session

import (
	"github.com/google/uuid"

	"github.com/studysquad/studysquad/internal/llm"
)

// Greeting is the assistant message every session starts with.
const Greeting = "Hai bro! Mau belajar apa hari ini? 😎"

// Mode is the interaction mode of the session.
type Mode string

const (
	ModeChat Mode = "chat"
	ModeQuiz Mode = "quiz"
)

// Message is one transcript entry.
type Message struct {
	Role    llm.Role
	Content string

	// Failed marks a synthetic assistant entry reporting a completion
	// failure. Failed entries are shown but never sent to the model or
	// scored.
	Failed bool
}

// State is the transient state of one study session. The transcript only
// grows and the score never decreases.
//
// State is not safe for concurrent use; the UI owns it on its update loop.
type State struct {
	id       string
	messages []Message
	mode     Mode
	score    int
}

// NewState returns a session in chat mode with score 0 and the greeting as
// its only message.
func NewState() *State {
	return &State{
		id:       uuid.NewString(),
		messages: []Message{{Role: llm.RoleAssistant, Content: Greeting}},
		mode:     ModeChat,
	}
}

// ID returns the session ID used to correlate logged completions.
func (s *State) ID() string { return s.id }

// Mode returns the current interaction mode.
func (s *State) Mode() Mode { return s.mode }

// Score returns the running score.
func (s *State) Score() int { return s.score }

// Len returns the number of transcript entries.
func (s *State) Len() int { return len(s.messages) }

// Messages returns a copy of the transcript.
func (s *State) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// LastReply returns the most recent successful assistant message.
func (s *State) LastReply() (string, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		m := s.messages[i]
		if m.Role == llm.RoleAssistant && !m.Failed {
			return m.Content, true
		}
	}
	return "", false
}

// history returns the transcript as model input, without failed entries.
func (s *State) history() []llm.Message {
	out := make([]llm.Message, 0, len(s.messages))
	for _, m := range s.messages {
		if m.Failed {
			continue
		}
		out = append(out, llm.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func (s *State) append(m Message) {
	s.messages = append(s.messages, m)
}

// addScore adds a non-negative delta.
func (s *State) addScore(delta int) {
	if delta > 0 {
		s.score += delta
	}
}
