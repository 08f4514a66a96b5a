package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tody/internal/todosync"
)

// renderMain stacks the header, the active panel, any toasts and the command
// bar into a full-screen frame.
func (m Model) renderMain() string {
	header := m.renderHeader()
	cmdBar := m.renderCommandBar()
	toasts := m.renderToasts()

	used := lipgloss.Height(header) + lipgloss.Height(cmdBar)
	if toasts != "" {
		used += lipgloss.Height(toasts)
	}
	contentHeight := m.height - used
	if contentHeight < MinContentHeight {
		contentHeight = MinContentHeight
	}

	var content string
	switch {
	case m.pane == PanePad:
		content = m.renderPanel("Scratch pad", m.renderPad(contentHeight-2), contentHeight)
	case m.session.View() == todosync.ViewAuth:
		content = m.renderAuth(contentHeight)
	default:
		content = m.renderPanel("Todos", m.renderTodos(contentHeight-2), contentHeight)
	}

	parts := []string{header, content}
	if toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, cmdBar)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderPanel frames body in a bordered box filling the content area.
func (m Model) renderPanel(title, body string, height int) string {
	styles := m.theme.Styles()
	innerHeight := height - 2
	if innerHeight < 1 {
		innerHeight = 1
	}
	lines := strings.Split(body, "\n")
	if len(lines) > innerHeight-1 {
		lines = lines[:innerHeight-1]
	}
	text := styles.AccentText.Bold(true).Render(title) + "\n" + strings.Join(lines, "\n")
	return styles.PanelFocus.
		Width(m.width - 2).
		Height(innerHeight).
		Render(text)
}

// renderHeader renders the status bar: logo, session state and the
// typewriter line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	b := newBar(m.theme.Surface)

	parts := []string{b.text("tody", styles.Logo)}

	if m.session.View() == todosync.ViewTodos {
		parts = append(parts, b.text("●", styles.SuccessText)+b.gap(1)+b.text(m.session.User(), styles.Text))
		if snap := m.session.Snapshot(); snap.LastError != nil {
			parts = append(parts, b.text("stale", styles.WarningText))
		} else {
			parts = append(parts, b.text(pluralize(len(m.todos.rows), "todo"), styles.MutedText))
		}
	} else {
		parts = append(parts, b.text("○ signed out", styles.MutedText))
	}

	if m.busy > 0 {
		parts = append(parts, b.text("working…", styles.WarningText))
	}

	left := b.join(parts, 2)
	typed := b.text(m.typer.View(), styles.InfoText)

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(typed)
	if m.width < LayoutCompactWidth || gap < 2 {
		return styles.Header.Width(m.width).Render(left)
	}
	return styles.Header.Width(m.width).Render(left + b.gap(gap) + typed)
}

// renderCommandBar renders the key hints for whatever has the keyboard.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	b := newBar(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.pane == PanePad && m.scr.typing():
		commands = []cmd{{"enter", "Add"}, {"tab", "Field"}, {"esc", "Done"}}
	case m.pane == PanePad:
		commands = []cmd{
			{"a", "Add"},
			{"space", "Mark"},
			{"d", "Remove"},
			{"c", "Clear done"},
			{"tab", "Todos"},
			{"?", "Help"},
		}
	case m.session.View() == todosync.ViewAuth:
		other := "Register"
		if m.session.Form() == todosync.FormRegister {
			other = "Login"
		}
		commands = []cmd{
			{"enter", "Submit"},
			{"tab", "Field"},
			{"ctrl+r", other},
			{"ctrl+p", "Pad"},
			{"f1", "Help"},
		}
	case m.todos.adding:
		commands = []cmd{{"enter", "Add"}, {"esc", "Cancel"}}
	default:
		commands = []cmd{
			{"a", "Add"},
			{"space", "Toggle"},
			{"d", "Delete"},
			{"r", "Reload"},
			{"L", "Logout"},
			{"tab", "Pad"},
			{"?", "Help"},
		}
	}

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, b.hint(c.key, c.desc, styles.AccentText, styles.MutedText))
	}
	segments = append(segments, b.hint("T", m.theme.Name, styles.AccentText, styles.FaintText))

	return styles.Header.Width(m.width).Render(b.join(segments, 2))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
