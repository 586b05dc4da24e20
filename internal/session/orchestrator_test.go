package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/studysquad/studysquad/internal/llm"
	"github.com/studysquad/studysquad/internal/logger"
)

func init() {
	logger.Discard()
}

func newTestOrchestrator(responses ...llm.MockResponse) (*Orchestrator, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return NewOrchestrator(NewState(), mock, DefaultConfig()), mock
}

func TestHandleUserInput_ScoresReply(t *testing.T) {
	o, mock := newTestOrchestrator(llm.MockResponse{Content: "  Integral itu kebalikan turunan. Jawaban lo benar!  \n"})

	reply, err := o.HandleUserInput(context.Background(), "Jelasin integral dasar", MoodRelaxed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.Text != "Integral itu kebalikan turunan. Jawaban lo benar!" {
		t.Errorf("reply not trimmed: %q", reply.Text)
	}
	if reply.Delta != 1 || reply.Score != 1 {
		t.Errorf("reply delta/score = %d/%d, want 1/1", reply.Delta, reply.Score)
	}

	s := o.State()
	if s.Len() != 3 {
		t.Fatalf("transcript len = %d, want 3", s.Len())
	}
	msgs := s.Messages()
	if msgs[1].Role != llm.RoleUser || msgs[1].Content != "Jelasin integral dasar" {
		t.Errorf("user message = %+v", msgs[1])
	}
	if msgs[2].Role != llm.RoleAssistant || msgs[2].Content != reply.Text {
		t.Errorf("assistant message = %+v", msgs[2])
	}
	if s.Score() != 1 {
		t.Errorf("Score() = %d, want 1", s.Score())
	}

	req := mock.Calls[0]
	if req.Temperature != 0.9 {
		t.Errorf("temperature = %v, want 0.9", req.Temperature)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("request messages = %d, want 2", len(req.Messages))
	}
	if req.Messages[0].Content != Greeting || req.Messages[1].Content != "Jelasin integral dasar" {
		t.Errorf("request history = %+v", req.Messages)
	}
	if !strings.Contains(req.System, "😎 Santai") || !strings.Contains(req.System, "Mode saat ini: chat") {
		t.Errorf("system prompt missing mood or mode:\n%s", req.System)
	}
}

func TestHandleUserInput_NoKeywordNoScore(t *testing.T) {
	o, _ := newTestOrchestrator(llm.MockResponse{Content: "Coba lagi ya"})

	reply, err := o.HandleUserInput(context.Background(), "2+2=5?", MoodTired)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Delta != 0 || o.State().Score() != 0 {
		t.Errorf("expected no score, got delta %d score %d", reply.Delta, o.State().Score())
	}
}

func TestHandleUserInput_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		o, mock := newTestOrchestrator()

		_, err := o.HandleUserInput(context.Background(), in, DefaultMood)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("HandleUserInput(%q) error = %v, want ErrEmptyInput", in, err)
		}
		if o.State().Len() != 1 {
			t.Errorf("blank input must not change the transcript, len = %d", o.State().Len())
		}
		if mock.CallCount() != 0 {
			t.Errorf("blank input must not call the provider")
		}
	}
}

func TestHandleUserInput_CompletionFailure(t *testing.T) {
	o, mock := newTestOrchestrator(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")}},
		llm.MockResponse{Content: "Mantap, udah nyambung lagi"},
	)

	_, err := o.HandleUserInput(context.Background(), "halo", DefaultMood)
	if !errors.Is(err, ErrCompletion) {
		t.Fatalf("error = %v, want ErrCompletion", err)
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("expected provider error to stay reachable, got %v", err)
	}

	s := o.State()
	if s.Len() != 3 {
		t.Fatalf("transcript len = %d, want 3 (greeting, user, failure)", s.Len())
	}
	failed := s.Messages()[2]
	if !failed.Failed || failed.Role != llm.RoleAssistant {
		t.Errorf("expected a failed assistant entry, got %+v", failed)
	}
	if !strings.Contains(failed.Content, "connection refused") {
		t.Errorf("failure entry should describe the error: %q", failed.Content)
	}
	if s.Score() != 0 {
		t.Errorf("score changed on failure: %d", s.Score())
	}

	// The failed entry is not sent on the next turn.
	if _, err := o.HandleUserInput(context.Background(), "coba lagi", DefaultMood); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next := mock.Calls[1].Messages
	if len(next) != 3 {
		t.Fatalf("next request messages = %d, want 3", len(next))
	}
	for _, m := range next {
		if strings.HasPrefix(m.Content, "⚠️") {
			t.Errorf("failed entry leaked into request: %q", m.Content)
		}
	}
	if s.Score() != 1 {
		t.Errorf("Score() = %d, want 1", s.Score())
	}
}

func TestHandleUserInput_EmptyReplyIsFailure(t *testing.T) {
	o, _ := newTestOrchestrator(llm.MockResponse{Content: "   "})

	_, err := o.HandleUserInput(context.Background(), "halo", DefaultMood)
	if !errors.Is(err, ErrCompletion) {
		t.Fatalf("error = %v, want ErrCompletion", err)
	}
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestRespond_AfterQuizMode(t *testing.T) {
	o, mock := newTestOrchestrator(llm.MockResponse{Content: "Soal: 3 x 4 = ?"})
	NewModeController(o.State()).EnterQuizMode()

	reply, err := o.Respond(context.Background(), MoodEnergetic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "Soal: 3 x 4 = ?" {
		t.Errorf("reply = %q", reply.Text)
	}

	req := mock.Calls[0]
	if last := req.Messages[len(req.Messages)-1]; last.Content != QuizRequest {
		t.Errorf("last request message = %q, want the quiz request", last.Content)
	}
	if !strings.Contains(req.System, "Mode saat ini: quiz") {
		t.Errorf("system prompt should state quiz mode:\n%s", req.System)
	}
	if o.State().Len() != 3 {
		t.Errorf("transcript len = %d, want 3", o.State().Len())
	}
}

func TestSteps_CompleteDoesNotMutate(t *testing.T) {
	o, _ := newTestOrchestrator(llm.MockResponse{Content: "benar"})
	if err := o.Submit("halo"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	turn := o.Request(DefaultMood)
	before := o.State().Len()

	reply, err := o.Complete(context.Background(), turn)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if o.State().Len() != before || o.State().Score() != 0 {
		t.Fatal("Complete must not touch state")
	}

	r := o.Commit(reply)
	if r.Score != 1 || o.State().Len() != before+1 {
		t.Errorf("Commit: score %d len %d", r.Score, o.State().Len())
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	o, _ := newTestOrchestrator(
		llm.MockResponse{Content: "benar"},
		llm.MockResponse{Err: errors.New("boom")},
		llm.MockResponse{Content: "salah"},
		llm.MockResponse{Content: "mantap"},
	)
	mc := NewModeController(o.State())

	prevScore, prevLen := 0, o.State().Len()
	step := func() {
		s := o.State()
		if s.Score() < prevScore {
			t.Fatalf("score decreased: %d -> %d", prevScore, s.Score())
		}
		if s.Len() < prevLen {
			t.Fatalf("transcript shrank: %d -> %d", prevLen, s.Len())
		}
		prevScore, prevLen = s.Score(), s.Len()
	}

	o.HandleUserInput(context.Background(), "a", DefaultMood)
	step()
	mc.EnterQuizMode()
	step()
	o.Respond(context.Background(), DefaultMood)
	step()
	mc.EnterChatMode()
	step()
	o.HandleUserInput(context.Background(), "b", DefaultMood)
	step()
	o.HandleUserInput(context.Background(), "c", DefaultMood)
	step()

	if o.State().Score() != 2 {
		t.Errorf("final score = %d, want 2", o.State().Score())
	}
}

type ctxCapture struct {
	purpose, sessionID string
}

func (c *ctxCapture) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	c.purpose = llm.PurposeFrom(ctx)
	c.sessionID = llm.SessionIDFrom(ctx)
	return &llm.Response{Content: "ok"}, nil
}

func (c *ctxCapture) ModelID() string { return "capture" }

func TestComplete_TagsContext(t *testing.T) {
	p := &ctxCapture{}
	state := NewState()
	o := NewOrchestrator(state, p, DefaultConfig())
	NewModeController(state).EnterQuizMode()

	if _, err := o.Respond(context.Background(), DefaultMood); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.purpose != "quiz" {
		t.Errorf("purpose = %q, want quiz", p.purpose)
	}
	if p.sessionID != state.ID() {
		t.Errorf("session ID = %q, want %q", p.sessionID, state.ID())
	}
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rate limit", &llm.ErrRateLimit{Err: errors.New("429")}, "kebanyakan request"},
		{"canceled", &llm.ErrProviderUnavailable{Err: context.Canceled}, "dibatalin"},
		{"unavailable", &llm.ErrProviderUnavailable{Err: errors.New("GROQ_API_KEY is required")}, "GROQ_API_KEY"},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FailureMessage(tt.err)
			if !strings.HasPrefix(got, "⚠️") || !strings.Contains(got, tt.want) {
				t.Errorf("FailureMessage() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
