package chat

import (
	tea "charm.land/bubbletea/v2"

	"github.com/studysquad/studysquad/internal/progress"
)

// completionMsg carries the result of an off-loop model call.
type completionMsg struct {
	Reply string
	Err   error
}

// progressLoadedMsg is sent when the progress log has been read.
type progressLoadedMsg struct {
	Sessions []progress.Record
	Err      error
}

// progressSavedMsg is sent when a save attempt finished.
type progressSavedMsg struct {
	Record progress.Record
	Err    error
}

// clipboardMsg is sent when a copy to the clipboard finished.
type clipboardMsg struct {
	Err error
}

// OwnsMsg reports whether msg is a result the chat screen is waiting for.
// Such messages must reach the chat screen even while another screen is
// on top of it.
func OwnsMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case completionMsg, progressLoadedMsg, progressSavedMsg, clipboardMsg:
		return true
	}
	return false
}
