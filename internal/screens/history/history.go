package history

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studysquad/studysquad/internal/progress"
	"github.com/studysquad/studysquad/internal/router"
	"github.com/studysquad/studysquad/internal/screen"
	"github.com/studysquad/studysquad/internal/ui/layout"
	"github.com/studysquad/studysquad/internal/ui/theme"
)

// Loader reads the progress log.
type Loader interface {
	Load() (*progress.Log, error)
}

type historyLoadedMsg struct {
	Sessions []progress.Record
	Err      error
}

// HistoryScreen lists every saved study session in save order.
type HistoryScreen struct {
	loader   Loader
	sessions []progress.Record
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(loader Loader) *HistoryScreen {
	return &HistoryScreen{loader: loader}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		log, err := s.loader.Load()
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: log.Sessions}
	}
}

func (s *HistoryScreen) Title() string {
	return "Riwayat Sesi"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Geser"},
		{Key: "Home/End", Description: "Awal/Akhir"},
		{Key: "Esc", Description: "Balik"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = describeLoadError(msg.Err)
		} else {
			s.sessions = msg.Sessions
			s.selected = max(len(s.sessions)-1, 0)
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "home", "g":
			s.selected = 0
		case "end", "G":
			s.selected = max(len(s.sessions)-1, 0)
		}
	}
	return s, nil
}

func describeLoadError(err error) string {
	if errors.Is(err, progress.ErrCorruptStore) {
		return "File progress rusak dan nggak bakal diubah.\n" + err.Error()
	}
	return err.Error()
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Lagi buka riwayat...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Belum ada progress tersimpan.")
	}

	// One line per record; keep the selection in view.
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := min(start+visible, len(s.sessions))

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %d sesi tersimpan", len(s.sessions))))
	b.WriteString("\n\n")
	for i := start; i < end; i++ {
		line := s.sessions[i].String()
		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}
