package session

import "github.com/studysquad/studysquad/internal/llm"

const (
	// QuizRequest is the user message appended when quiz mode starts.
	QuizRequest = "Kasih gua soal latihan dong"

	// ChatResume is the assistant message appended when chat mode resumes.
	ChatResume = "Oke bro, kita balik ngobrol biasa aja 😁"
)

// ModeController switches the session between chat and quiz. Transitions
// happen only on explicit user actions, never from model output.
type ModeController struct {
	state *State
}

// NewModeController returns a controller for state.
func NewModeController(state *State) *ModeController {
	return &ModeController{state: state}
}

// EnterQuizMode switches to quiz and appends the practice-question request
// as a user message. The caller is expected to get a model reply for it.
func (c *ModeController) EnterQuizMode() {
	c.state.mode = ModeQuiz
	c.state.append(Message{Role: llm.RoleUser, Content: QuizRequest})
}

// EnterChatMode switches to chat and appends the acknowledgement as an
// assistant message. No model call follows.
func (c *ModeController) EnterChatMode() {
	c.state.mode = ModeChat
	c.state.append(Message{Role: llm.RoleAssistant, Content: ChatResume})
}
