package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studysquad/studysquad/internal/markdown"
	"github.com/studysquad/studysquad/internal/router"
	"github.com/studysquad/studysquad/internal/screen"
	"github.com/studysquad/studysquad/internal/screens/chat"
	"github.com/studysquad/studysquad/internal/session"
	"github.com/studysquad/studysquad/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Orchestrator *session.Orchestrator
	Progress     chat.ProgressStore
	Renderer     *markdown.Renderer
	Context      context.Context
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	chat   *chat.ChatScreen
	width  int
	height int
}

// newAppModel creates a new AppModel with the chat screen at the bottom of
// the stack.
func newAppModel(opts Options) AppModel {
	chatScreen := chat.New(chat.Deps{
		Orchestrator: opts.Orchestrator,
		Progress:     opts.Progress,
		Renderer:     opts.Renderer,
		Context:      opts.Context,
	})
	return AppModel{
		router: router.New(chatScreen),
		chat:   chatScreen,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.chat.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	// Completion and save results belong to the chat screen even when the
	// history view is open.
	if chat.OwnsMsg(msg) && m.router.Active() != screen.Screen(m.chat) {
		_, cmd := m.chat.Update(msg)
		return m, cmd
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var info layout.HeaderInfo
	var footerHints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if p, ok := active.(screen.HeaderInfoProvider); ok {
			info = p.HeaderInfo()
		}
		if p, ok := active.(screen.KeyHintProvider); ok {
			footerHints = p.KeyHints()
		}
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Keluar"}}
	}

	header := layout.RenderHeader(title, info, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
