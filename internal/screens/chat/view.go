package chat

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studysquad/studysquad/internal/llm"
	"github.com/studysquad/studysquad/internal/markdown"
	"github.com/studysquad/studysquad/internal/session"
	"github.com/studysquad/studysquad/internal/ui/theme"
)

const (
	minTranscriptHeight = 3
	historyPreview      = 3
)

// transcriptCache holds rendered transcript entries. Entries are only
// appended, so rendering is incremental until the width changes.
type transcriptCache struct {
	width   int
	entries []string
}

func (c *transcriptCache) render(msgs []session.Message, width int, r *markdown.Renderer) []string {
	if width != c.width {
		c.width = width
		c.entries = nil
	}
	for i := len(c.entries); i < len(msgs); i++ {
		c.entries = append(c.entries, renderEntry(msgs[i], width, r))
	}
	return c.entries
}

func renderEntry(m session.Message, width int, r *markdown.Renderer) string {
	body := lipgloss.NewStyle().Width(width).PaddingLeft(2)

	if m.Role == llm.RoleUser {
		return theme.UserLabel.Render("Lo:") + "\n" + body.Render(m.Content)
	}
	label := theme.BotLabel.Render("Bot:")
	if m.Failed {
		return label + "\n" + body.Inherit(theme.FailedEntry).Render(m.Content)
	}
	return label + "\n" + body.Render(r.Render(m.Content, width-2))
}

func (s *ChatScreen) View(width, height int) string {
	controls := s.renderControls(width)
	controlsHeight := lipgloss.Height(controls)

	transcriptHeight := height - controlsHeight - 1
	if transcriptHeight < minTranscriptHeight {
		transcriptHeight = minTranscriptHeight
	}

	return s.renderTranscript(width, transcriptHeight) + "\n" + controls
}

func (s *ChatScreen) renderTranscript(width, height int) string {
	entries := s.transcript.render(s.state.Messages(), width-2, s.deps.Renderer)

	var lines []string
	for _, e := range entries {
		lines = append(lines, strings.Split(e, "\n")...)
		lines = append(lines, "")
	}
	if s.busy {
		lines = append(lines, theme.Thinking.Render(ThinkingNotice))
	}

	maxScroll := max(len(lines)-height, 0)
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	end := len(lines) - s.scroll
	start := max(end-height, 0)
	visible := lines[start:end]

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		MaxHeight(height).
		Render(strings.Join(visible, "\n"))
}

func (s *ChatScreen) renderControls(width int) string {
	var b strings.Builder

	b.WriteString(s.mood.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, s.quizBtn.View(), "  ", s.chatBtn.View()))
	b.WriteString("\n")

	s.input.SetWidth(width - 6)
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Render("📊 Progress Belajar Lo"))
	b.WriteString("   ")
	b.WriteString(theme.Body.Render("Total Skor: "))
	b.WriteString(theme.Score.Render(fmt.Sprintf("%d", s.state.Score())))
	b.WriteString("\n")
	b.WriteString(s.renderHistory(width))
	b.WriteString("\n")

	s.topic.SetWidth(width - 6)
	b.WriteString(s.topic.View())
	b.WriteString("\n")
	b.WriteString(s.saveBtn.View())
	if n := s.renderNotice(); n != "" {
		b.WriteString("  ")
		b.WriteString(n)
	}

	return b.String()
}

func (s *ChatScreen) renderHistory(width int) string {
	switch {
	case s.historyErr != "":
		return theme.ErrorText.Width(width).Render(s.historyErr)
	case !s.historyRead:
		return theme.Hint.Render("...")
	case len(s.history) == 0:
		return theme.Hint.Render(NoProgress)
	}

	var b strings.Builder
	b.WriteString(theme.Body.Render("Riwayat sesi:"))
	shown := s.history
	if len(shown) > historyPreview {
		shown = shown[max(len(shown)-historyPreview, 0):]
	}
	if hidden := len(s.history) - len(shown); hidden > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf(" (%d lagi, Ctrl+R buat lihat semua)", hidden)))
	}
	for _, r := range shown {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(r.String()))
	}
	return b.String()
}

func (s *ChatScreen) renderNotice() string {
	switch s.notice.kind {
	case noticeSuccess:
		return theme.SuccessText.Render(s.notice.text)
	case noticeWarning:
		return theme.WarningText.Render(s.notice.text)
	case noticeError:
		return theme.ErrorText.Render(s.notice.text)
	}
	return ""
}
