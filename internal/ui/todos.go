package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tody/internal/todoapi"
	"github.com/five82/tody/internal/todosync"
)

type todoState struct {
	rows   []todosync.Row
	cursor int
	input  textinput.Model
	adding bool
}

func newTodoState() todoState {
	in := textinput.New()
	in.Prompt = "+ "
	in.Placeholder = "What needs doing?"
	in.CharLimit = 200
	return todoState{input: in}
}

func (t *todoState) clamp() {
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *todoState) blur() {
	t.adding = false
	t.input.Blur()
}

func (t *todoState) reset() {
	t.blur()
	t.input.Reset()
	t.rows = nil
	t.cursor = 0
}

func (t *todoState) updateInput(msg tea.Msg) tea.Cmd {
	if !t.adding {
		return nil
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t todoState) selected() (todosync.Row, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return todosync.Row{}, false
	}
	return t.rows[t.cursor], true
}

// handleTodosKey processes keyboard input for the todo list.
func (m Model) handleTodosKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.todos.adding {
		return m.handleNewTodoKey(msg)
	}

	if model, cmd, ok := m.handleGlobalKey(msg); ok {
		return model, cmd
	}

	switch {
	case key.Matches(msg, m.keys.NewTodo):
		m.todos.adding = true
		cmd := m.todos.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		if m.todos.cursor > 0 {
			m.todos.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.todos.cursor < len(m.todos.rows)-1 {
			m.todos.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.todos.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.todos.cursor = len(m.todos.rows) - 1
		m.todos.clamp()

	case key.Matches(msg, m.keys.Toggle):
		row, ok := m.todos.selected()
		if !ok {
			return m, nil
		}
		cmd := m.toggleTodo(row.ID, !row.Completed)
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		row, ok := m.todos.selected()
		if !ok {
			return m, nil
		}
		cmd := m.deleteTodo(row.ID)
		return m, cmd

	case key.Matches(msg, m.keys.Reload):
		cmd := m.reloadTodos()
		return m, cmd

	case key.Matches(msg, m.keys.Logout):
		cmd := m.logout()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleNewTodoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.todos.blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		title := m.todos.input.Value()
		if strings.TrimSpace(title) == "" {
			return m, nil
		}
		cmd := m.addTodo(title)
		return m, cmd
	}
	cmd := m.todos.updateInput(msg)
	return m, cmd
}

func (m *Model) addTodo(title string) tea.Cmd {
	session := m.session
	return m.dispatch(todosync.ActionAdd, func(ctx context.Context) (string, bool, error) {
		added, err := session.AddTodo(ctx, title)
		return "", added, err
	})
}

func (m *Model) reloadTodos() tea.Cmd {
	session := m.session
	return m.dispatch(todosync.ActionLoad, func(ctx context.Context) (string, bool, error) {
		return "", false, session.LoadTodos(ctx)
	})
}

func (m *Model) logout() tea.Cmd {
	session := m.session
	return m.dispatch(todosync.ActionLogout, func(ctx context.Context) (string, bool, error) {
		return "", false, session.Logout(ctx)
	})
}

func (m *Model) toggleTodo(id todoapi.ID, completed bool) tea.Cmd {
	session := m.session
	return m.dispatch(todosync.ActionToggle, func(ctx context.Context) (string, bool, error) {
		return "", false, session.ToggleTodo(ctx, id, completed)
	})
}

func (m *Model) deleteTodo(id todoapi.ID) tea.Cmd {
	session := m.session
	return m.dispatch(todosync.ActionDelete, func(ctx context.Context) (string, bool, error) {
		return "", false, session.DeleteTodo(ctx, id)
	})
}

// renderTodos renders the new-todo input and one row per todo: checkbox,
// title and a delete hint on the selected row.
func (m Model) renderTodos(height int) string {
	styles := m.theme.Styles()
	var lines []string

	if m.todos.adding {
		lines = append(lines, m.renderField(m.todos.input))
	} else {
		lines = append(lines, styles.FaintText.Render("a add · space toggle · d delete · r reload"))
	}
	lines = append(lines, "")

	if len(m.todos.rows) == 0 {
		lines = append(lines, styles.MutedText.Render("No todos yet. Press a to add one."))
		return strings.Join(lines, "\n")
	}

	start, end := visibleWindow(len(m.todos.rows), m.todos.cursor, height-len(lines))
	for i := start; i < end; i++ {
		row := m.todos.rows[i]
		lines = append(lines, m.renderTodoRow(row, i == m.todos.cursor))
	}
	if end < len(m.todos.rows) || start > 0 {
		lines = append(lines, styles.FaintText.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(m.todos.rows))))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTodoRow(row todosync.Row, selected bool) string {
	styles := m.theme.Styles()
	box := "[ ]"
	title := styles.Text.Render(truncate(row.Title, m.width-16))
	if row.Completed {
		box = "[x]"
		title = styles.Done.Render(truncate(row.Title, m.width-16))
	}
	line := box + " " + title
	if selected {
		return styles.Selected.Render(padRight(line, m.width-12)) + " " + styles.DangerText.Render("✕")
	}
	return line
}

// visibleWindow returns the [start, end) slice of total rows that keeps
// cursor on screen within height lines.
func visibleWindow(total, cursor, height int) (int, int) {
	if height < 1 {
		height = 1
	}
	if total <= height {
		return 0, total
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > total {
		end = total
		start = end - height
	}
	return start, end
}
