// Package chat is the main study screen: transcript, mood and mode
// controls, chat input, score, progress history, and the save form.
package chat

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/studysquad/studysquad/internal/markdown"
	"github.com/studysquad/studysquad/internal/progress"
	"github.com/studysquad/studysquad/internal/router"
	"github.com/studysquad/studysquad/internal/screen"
	"github.com/studysquad/studysquad/internal/screens/history"
	"github.com/studysquad/studysquad/internal/session"
	"github.com/studysquad/studysquad/internal/ui/components"
	"github.com/studysquad/studysquad/internal/ui/layout"
)

// UI copy.
const (
	MoodPrompt       = "Mood belajar lo hari ini:"
	QuizButtonLabel  = "🎓 Coba Quiz Mini"
	ChatButtonLabel  = "💬 Mode Chat Biasa"
	InputPlaceholder = "Tulis pertanyaan lo..."
	TopicPrompt      = "Masukin nama topik sesi ini biar disimpan:"
	SaveButtonLabel  = "💾 Simpan Progress"
	EmptyTopicNotice = "Isi dulu topiknya, bro 😅"
	SavedNotice      = "Progress berhasil disimpan ✅"
	NoProgress       = "Belum ada progress tersimpan."
	ThinkingNotice   = "Bot lagi mikir..."
	CopiedNotice     = "Jawaban terakhir udah dicopy 📋"
)

// ProgressStore is the progress log as the screen uses it.
type ProgressStore interface {
	Load() (*progress.Log, error)
	Append(topic string, score int) (progress.Record, error)
}

// Deps are the collaborators of the chat screen.
type Deps struct {
	Orchestrator *session.Orchestrator
	Progress     ProgressStore
	Renderer     *markdown.Renderer

	// Context bounds model calls. Defaults to context.Background().
	Context context.Context

	// CopyText writes to the system clipboard. Defaults to
	// clipboard.WriteAll.
	CopyText func(string) error
}

type focusArea int

const (
	focusMood focusArea = iota
	focusQuiz
	focusChat
	focusInput
	focusTopic
	focusSave
	focusCount
)

type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeSuccess
	noticeWarning
	noticeError
)

type notice struct {
	kind noticeKind
	text string
}

// ChatScreen implements screen.Screen for the study session.
type ChatScreen struct {
	deps  Deps
	state *session.State
	modes *session.ModeController

	mood    components.Selector
	quizBtn components.Button
	chatBtn components.Button
	input   components.TextInput
	topic   components.TextInput
	saveBtn components.Button
	focus   focusArea

	busy   bool
	notice notice

	history     []progress.Record
	historyErr  string
	historyRead bool

	transcript transcriptCache
	scroll     int
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.HeaderInfoProvider = (*ChatScreen)(nil)

// New creates the chat screen.
func New(deps Deps) *ChatScreen {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.CopyText == nil {
		deps.CopyText = clipboard.WriteAll
	}
	if deps.Renderer == nil {
		deps.Renderer = markdown.New("dark")
	}

	labels := make([]string, len(session.Moods))
	def := 0
	for i, m := range session.Moods {
		labels[i] = m.Label()
		if m == session.DefaultMood {
			def = i
		}
	}

	state := deps.Orchestrator.State()
	s := &ChatScreen{
		deps:    deps,
		state:   state,
		modes:   session.NewModeController(state),
		mood:    components.NewSelector(MoodPrompt, labels, def),
		quizBtn: components.NewButton(QuizButtonLabel, nil),
		chatBtn: components.NewButton(ChatButtonLabel, nil),
		input:   components.NewTextInput("", InputPlaceholder, 0),
		topic:   components.NewTextInput(TopicPrompt, "", 80),
		saveBtn: components.NewButton(SaveButtonLabel, nil),
		focus:   focusInput,
	}
	s.quizBtn.OnPress = s.enterQuiz
	s.chatBtn.OnPress = s.enterChat
	s.saveBtn.OnPress = s.save
	s.syncFocus()
	return s
}

func (s *ChatScreen) Init() tea.Cmd {
	return tea.Batch(s.loadProgress(), s.input.Focus())
}

func (s *ChatScreen) Title() string {
	return "Sesi Belajar"
}

func (s *ChatScreen) HeaderInfo() layout.HeaderInfo {
	return layout.HeaderInfo{Score: s.state.Score(), Mode: string(s.state.Mode())}
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Pindah"},
		{Key: "Enter", Description: "Pilih/Kirim"},
	}
	if s.focus == focusMood {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Ganti mood"})
	}
	return append(hints,
		layout.KeyHint{Key: "PgUp/PgDn", Description: "Scroll"},
		layout.KeyHint{Key: "Ctrl+Y", Description: "Copy jawaban"},
		layout.KeyHint{Key: "Ctrl+R", Description: "Riwayat"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Keluar"},
	)
}

// Mood returns the currently selected mood.
func (s *ChatScreen) Mood() session.Mood {
	return session.Moods[s.mood.Selected]
}

// Busy reports whether a completion is in flight.
func (s *ChatScreen) Busy() bool {
	return s.busy
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case completionMsg:
		return s, s.handleCompletion(msg)

	case progressLoadedMsg:
		s.historyRead = true
		if msg.Err != nil {
			s.historyErr = describeProgressError(msg.Err)
			return s, nil
		}
		s.historyErr = ""
		s.history = msg.Sessions
		return s, nil

	case progressSavedMsg:
		return s, s.handleSaved(msg)

	case clipboardMsg:
		if msg.Err != nil {
			s.notice = notice{noticeError, "Gagal copy ke clipboard: " + msg.Err.Error()}
		} else {
			s.notice = notice{noticeSuccess, CopiedNotice}
		}
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	// Cursor blink and other internal messages go to the focused field.
	var cmd tea.Cmd
	switch s.focus {
	case focusInput:
		s.input, cmd = s.input.Update(msg)
	case focusTopic:
		s.topic, cmd = s.topic.Update(msg)
	}
	return s, cmd
}

func (s *ChatScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		return s.moveFocus(1)
	case "shift+tab":
		return s.moveFocus(-1)
	case "ctrl+y":
		return s.copyLastReply()
	case "ctrl+r":
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: history.New(s.deps.Progress)}
		}
	case "pgup":
		s.scroll += 5
		return nil
	case "pgdown":
		s.scroll = max(s.scroll-5, 0)
		return nil
	}

	var cmd tea.Cmd
	switch s.focus {
	case focusMood:
		s.mood, cmd = s.mood.Update(msg)
	case focusQuiz:
		s.quizBtn, cmd = s.quizBtn.Update(msg)
	case focusChat:
		s.chatBtn, cmd = s.chatBtn.Update(msg)
	case focusInput:
		if msg.String() == "enter" {
			return s.submit()
		}
		s.input, cmd = s.input.Update(msg)
	case focusTopic:
		if msg.String() == "enter" {
			return s.save()
		}
		s.topic, cmd = s.topic.Update(msg)
	case focusSave:
		s.saveBtn, cmd = s.saveBtn.Update(msg)
	}
	return cmd
}

func (s *ChatScreen) moveFocus(delta int) tea.Cmd {
	s.focus = focusArea((int(s.focus) + delta + int(focusCount)) % int(focusCount))
	return s.syncFocus()
}

// syncFocus pushes the focus and busy state into the components.
func (s *ChatScreen) syncFocus() tea.Cmd {
	s.mood.Focused = s.focus == focusMood
	s.quizBtn.Focused = s.focus == focusQuiz
	s.chatBtn.Focused = s.focus == focusChat
	s.saveBtn.Focused = s.focus == focusSave

	s.quizBtn.Disabled = s.busy
	s.chatBtn.Disabled = s.busy
	s.input.Disabled = s.busy

	var cmds []tea.Cmd
	if s.focus == focusInput && !s.busy {
		cmds = append(cmds, s.input.Focus())
	} else {
		s.input.Blur()
	}
	if s.focus == focusTopic {
		cmds = append(cmds, s.topic.Focus())
	} else {
		s.topic.Blur()
	}
	return tea.Batch(cmds...)
}

// submit sends the chat input as a user turn.
func (s *ChatScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	if err := s.deps.Orchestrator.Submit(s.input.Value()); err != nil {
		// Blank input is ignored.
		return nil
	}
	s.input.Reset()
	return s.requestCompletion()
}

func (s *ChatScreen) enterQuiz() tea.Cmd {
	if s.busy {
		return nil
	}
	s.modes.EnterQuizMode()
	return s.requestCompletion()
}

func (s *ChatScreen) enterChat() tea.Cmd {
	if s.busy {
		return nil
	}
	s.modes.EnterChatMode()
	s.scroll = 0
	return nil
}

// requestCompletion prepares the turn on the update loop and runs the
// model call in a command. Only one call is in flight at a time.
func (s *ChatScreen) requestCompletion() tea.Cmd {
	orch := s.deps.Orchestrator
	turn := orch.Request(s.Mood())
	ctx := s.deps.Context

	s.busy = true
	s.scroll = 0
	s.notice = notice{}
	focusCmd := s.syncFocus()

	return tea.Batch(focusCmd, func() tea.Msg {
		reply, err := orch.Complete(ctx, turn)
		return completionMsg{Reply: reply, Err: err}
	})
}

func (s *ChatScreen) handleCompletion(msg completionMsg) tea.Cmd {
	s.busy = false
	if msg.Err != nil {
		// The failure is shown in the transcript.
		_ = s.deps.Orchestrator.Fail(msg.Err)
	} else {
		s.deps.Orchestrator.Commit(msg.Reply)
	}
	s.scroll = 0
	return s.syncFocus()
}

func (s *ChatScreen) save() tea.Cmd {
	topic := s.topic.Value()
	if strings.TrimSpace(topic) == "" {
		s.notice = notice{noticeWarning, EmptyTopicNotice}
		return nil
	}

	store := s.deps.Progress
	score := s.state.Score()
	return func() tea.Msg {
		rec, err := store.Append(topic, score)
		return progressSavedMsg{Record: rec, Err: err}
	}
}

func (s *ChatScreen) handleSaved(msg progressSavedMsg) tea.Cmd {
	switch {
	case errors.Is(msg.Err, progress.ErrEmptyTopic):
		s.notice = notice{noticeWarning, EmptyTopicNotice}
		return nil
	case errors.Is(msg.Err, progress.ErrCorruptStore):
		s.notice = notice{noticeError, describeProgressError(msg.Err)}
		return nil
	case msg.Err != nil:
		s.notice = notice{noticeError, "Gagal nyimpen progress: " + msg.Err.Error()}
		return nil
	}

	s.notice = notice{noticeSuccess, SavedNotice}
	s.topic.Reset()
	return s.loadProgress()
}

func (s *ChatScreen) loadProgress() tea.Cmd {
	store := s.deps.Progress
	return func() tea.Msg {
		log, err := store.Load()
		if err != nil {
			return progressLoadedMsg{Err: err}
		}
		return progressLoadedMsg{Sessions: log.Sessions}
	}
}

func (s *ChatScreen) copyLastReply() tea.Cmd {
	reply, ok := s.state.LastReply()
	if !ok {
		return nil
	}
	copyText := s.deps.CopyText
	return func() tea.Msg {
		return clipboardMsg{Err: copyText(reply)}
	}
}

func describeProgressError(err error) string {
	if errors.Is(err, progress.ErrCorruptStore) {
		return "⚠️ File progress rusak, jadi nggak diubah. Benerin manual dulu ya: " + err.Error()
	}
	return "⚠️ Gagal baca progress: " + err.Error()
}
