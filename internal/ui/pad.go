package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tody/internal/scratch"
)

const (
	padFieldTask = 0
	padFieldNote = 1
	padNoFocus   = -1
)

type padState struct {
	tasks  []scratch.Task
	cursor int
	inputs [2]textinput.Model
	focus  int
}

func newPadState() padState {
	task := textinput.New()
	task.Prompt = ""
	task.Placeholder = "task"
	task.CharLimit = 200

	note := textinput.New()
	note.Prompt = ""
	note.Placeholder = "note"
	note.CharLimit = 500

	return padState{inputs: [2]textinput.Model{task, note}, focus: padNoFocus}
}

func (p *padState) typing() bool { return p.focus != padNoFocus }

func (p *padState) focusField(field int) tea.Cmd {
	p.blur()
	p.focus = field
	return p.inputs[field].Focus()
}

func (p *padState) blur() {
	p.focus = padNoFocus
	for i := range p.inputs {
		p.inputs[i].Blur()
	}
}

func (p *padState) setWidth(w int) {
	for i := range p.inputs {
		p.inputs[i].Width = w
	}
}

func (p *padState) update(msg tea.Msg) tea.Cmd {
	if !p.typing() {
		return nil
	}
	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return cmd
}

func (p padState) selected() (scratch.Task, bool) {
	if p.cursor < 0 || p.cursor >= len(p.tasks) {
		return scratch.Task{}, false
	}
	return p.tasks[p.cursor], true
}

// syncPad copies the pad's tasks into the model.
func (m *Model) syncPad() {
	m.scr.tasks = m.pad.Tasks()
	if m.scr.cursor >= len(m.scr.tasks) {
		m.scr.cursor = len(m.scr.tasks) - 1
	}
	if m.scr.cursor < 0 {
		m.scr.cursor = 0
	}
}

// handlePadKey processes keyboard input for the scratch pad.
func (m Model) handlePadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.scr.typing() {
		return m.handlePadInputKey(msg)
	}

	if model, cmd, ok := m.handleGlobalKey(msg); ok {
		return model, cmd
	}

	switch {
	case key.Matches(msg, m.keys.NewTodo):
		cmd := m.scr.focusField(padFieldTask)
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		if m.scr.cursor > 0 {
			m.scr.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.scr.cursor < len(m.scr.tasks)-1 {
			m.scr.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.scr.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.scr.cursor = len(m.scr.tasks) - 1
		m.syncPad()

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.scr.selected(); ok {
			m.pad.Toggle(t.ID)
			m.syncPad()
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.scr.selected(); ok {
			m.pad.Remove(t.ID)
			m.syncPad()
		}
	case key.Matches(msg, m.keys.ClearCompleted):
		n := m.pad.ClearCompleted()
		m.syncPad()
		if n == 0 {
			return m, nil
		}
		cmd := m.pushToast(ToastInfo, fmt.Sprintf("Cleared %d completed", n))
		return m, cmd
	}
	return m, nil
}

func (m Model) handlePadInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.scr.blur()
		return m, nil

	case "tab", "shift+tab":
		cmd := m.scr.focusField(1 - m.scr.focus)
		return m, cmd

	case "enter":
		task := m.scr.inputs[padFieldTask].Value()
		note := m.scr.inputs[padFieldNote].Value()
		if m.scr.focus == padFieldTask && strings.TrimSpace(note) == "" {
			cmd := m.scr.focusField(padFieldNote)
			return m, cmd
		}
		if _, ok := m.pad.Add(task, note); !ok {
			return m, nil
		}
		m.scr.inputs[padFieldTask].Reset()
		m.scr.inputs[padFieldNote].Reset()
		m.syncPad()
		m.scr.cursor = len(m.scr.tasks) - 1
		cmd := m.scr.focusField(padFieldTask)
		return m, cmd
	}
	cmd := m.scr.update(msg)
	return m, cmd
}

func (m Model) renderPad(height int) string {
	styles := m.theme.Styles()
	var lines []string

	label := func(text string, field int) string {
		style := styles.MutedText
		if field == m.scr.focus {
			style = styles.AccentText
		}
		return style.Render(padRight(text, 6))
	}
	lines = append(lines,
		label("Task", padFieldTask)+m.renderField(m.scr.inputs[padFieldTask]),
		label("Note", padFieldNote)+m.renderField(m.scr.inputs[padFieldNote]),
		"",
	)

	if len(m.scr.tasks) == 0 {
		lines = append(lines, styles.MutedText.Render("Scratch pad is empty. Press a to jot something down."))
		return strings.Join(lines, "\n")
	}

	// Leave room for the note line under the list.
	start, end := visibleWindow(len(m.scr.tasks), m.scr.cursor, height-len(lines)-2)
	for i := start; i < end; i++ {
		t := m.scr.tasks[i]
		box := "[ ]"
		text := styles.Text.Render(truncate(t.Task, m.width-12))
		if t.Completed {
			box = "[x]"
			text = styles.Done.Render(truncate(t.Task, m.width-12))
		}
		line := box + " " + text
		if i == m.scr.cursor && !m.scr.typing() {
			line = styles.Selected.Render(padRight(line, m.width-8))
		}
		lines = append(lines, line)
	}

	if t, ok := m.scr.selected(); ok {
		lines = append(lines, "", styles.FaintText.Render("note: ")+styles.InfoText.Render(truncate(m.pad.Annotation(t.ID), m.width-12)))
	}
	return strings.Join(lines, "\n")
}
