package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var helpSections = []string{"Sign in", "Lists", "Todos", "Panels and inputs", "General"}

// helpMarkdown lists every binding of keys as markdown tables, one per
// FullHelp group.
func helpMarkdown(keys keyMap) string {
	var b strings.Builder
	b.WriteString("# Keyboard shortcuts\n")
	for i, group := range keys.FullHelp() {
		title := "More"
		if i < len(helpSections) {
			title = helpSections[i]
		}
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n| --- | --- |\n", title)
		for _, binding := range group {
			writeHelpRow(&b, binding)
		}
	}
	b.WriteString("\nThe scratch pad is local: its tasks are never sent to the server.\n")
	return b.String()
}

func writeHelpRow(b *strings.Builder, binding key.Binding) {
	h := binding.Help()
	if h.Key == "" {
		return
	}
	fmt.Fprintf(b, "| `%s` | %s |\n", h.Key, h.Desc)
}

func (m Model) helpWidth() int {
	w := 60
	if m.width > 0 && m.width-4 < w {
		w = m.width - 4
	}
	return w
}

// openHelp renders the help markdown into a scrollable viewport sized to the
// terminal.
func (m *Model) openHelp() {
	width := m.helpWidth()
	content := renderMarkdown(helpMarkdown(m.keys), width-6)

	height := lipgloss.Height(content)
	if maxHeight := m.height - 4; maxHeight > 0 && height > maxHeight {
		height = maxHeight
	}
	m.helpView = viewport.New(width-4, height)
	m.helpView.SetContent(content)
	m.showHelp = true
}

// handleHelpKey scrolls the help overlay; any other key closes it.
func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "down", "k", "j", "pgup", "pgdown":
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}
	m.showHelp = false
	return m, nil
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(0, 1).
		Width(m.helpWidth())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(m.helpView.View()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
