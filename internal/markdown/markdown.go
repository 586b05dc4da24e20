// Package markdown renders assistant replies for the terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/studysquad/studysquad/internal/logger"
)

const minWidth = 20

// Renderer renders markdown with a glamour standard style. Renderers are
// built lazily per wrap width and reused.
type Renderer struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// New returns a Renderer for a glamour standard style such as "dark",
// "light", "ascii" or "notty".
func New(style string) *Renderer {
	if style == "" {
		style = "dark"
	}
	return &Renderer{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

// Render renders md wrapped at width. On failure it returns md unchanged
// so the text is never lost.
func (r *Renderer) Render(md string, width int) string {
	if width < minWidth {
		width = minWidth
	}

	tr, err := r.renderer(width)
	if err != nil {
		logger.Debug("Markdown renderer unavailable", "style", r.style, "err", err)
		return md
	}

	out, err := tr.Render(md)
	if err != nil {
		logger.Debug("Markdown render failed", "err", err)
		return md
	}
	return strings.Trim(out, "\n")
}

func (r *Renderer) renderer(width int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tr, ok := r.renderers[width]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[width] = tr
	return tr, nil
}
