package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// bar renders header and command bar segments on one background color.
// lipgloss resets the background after every styled run, so the spaces
// between words and segments are painted explicitly.
type bar struct {
	fill lipgloss.Style
	bg   lipgloss.Color
}

func newBar(color string) bar {
	bg := lipgloss.Color(color)
	return bar{fill: lipgloss.NewStyle().Background(bg), bg: bg}
}

// text renders s word by word in style, keeping the background under the
// spaces.
func (b bar) text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	styled := style.Background(b.bg)
	words := strings.Split(s, " ")
	for i, w := range words {
		if w != "" {
			words[i] = styled.Render(w)
		}
	}
	return strings.Join(words, b.fill.Render(" "))
}

// gap returns n painted spaces.
func (b bar) gap(n int) string {
	if n <= 0 {
		return ""
	}
	return b.fill.Render(strings.Repeat(" ", n))
}

func (b bar) join(parts []string, n int) string {
	return strings.Join(parts, b.gap(n))
}

// hint renders a "key:desc" command bar entry.
func (b bar) hint(key, desc string, keyStyle, descStyle lipgloss.Style) string {
	return b.text(key, keyStyle) + b.fill.Render(":") + b.text(desc, descStyle)
}
