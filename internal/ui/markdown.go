package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// All bundled themes are dark, so markdown uses glamour's dark style. A
// fixed style also avoids the terminal background query of WithAutoStyle.
const markdownStyle = "dark"

var (
	mdRendererMu sync.Mutex
	mdRenderers  = map[int]*glamour.TermRenderer{}
)

// renderMarkdown renders md wrapped at width. On renderer failure the source
// text is returned unchanged.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()

	r := mdRenderers[width]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(markdownStyle),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[width] = rr
		r = rr
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
