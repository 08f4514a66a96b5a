package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tody/internal/todosync"
)

const (
	fieldUsername = 0
	fieldPassword = 1
)

// authState holds the login and registration forms. Only the form the
// session reports as visible receives input.
type authState struct {
	login    [2]textinput.Model
	register [2]textinput.Model
	focus    int
}

func newAuthState(username string) authState {
	a := authState{
		login:    newCredentialInputs(),
		register: newCredentialInputs(),
	}
	if username != "" {
		a.login[fieldUsername].SetValue(username)
		a.focus = fieldPassword
	}
	a.login[a.focus].Focus()
	return a
}

func newCredentialInputs() [2]textinput.Model {
	user := textinput.New()
	user.Prompt = ""
	user.Placeholder = "username"
	user.CharLimit = 64

	pass := textinput.New()
	pass.Prompt = ""
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return [2]textinput.Model{user, pass}
}

func (a *authState) inputs(form todosync.Form) *[2]textinput.Model {
	if form == todosync.FormRegister {
		return &a.register
	}
	return &a.login
}

func (a *authState) focusCurrent(form todosync.Form) tea.Cmd {
	a.blur()
	in := a.inputs(form)
	return in[a.focus].Focus()
}

func (a *authState) blur() {
	for i := range a.login {
		a.login[i].Blur()
		a.register[i].Blur()
	}
}

func (a *authState) update(form todosync.Form, msg tea.Msg) tea.Cmd {
	in := a.inputs(form)
	var cmd tea.Cmd
	in[a.focus], cmd = in[a.focus].Update(msg)
	return cmd
}

func (a *authState) values(form todosync.Form) (string, string) {
	in := a.inputs(form)
	return in[fieldUsername].Value(), in[fieldPassword].Value()
}

// registered moves the new username into the login form, which the session
// has just switched to.
func (a *authState) registered(form todosync.Form) tea.Cmd {
	user := a.register[fieldUsername].Value()
	a.register[fieldUsername].Reset()
	a.register[fieldPassword].Reset()
	a.login[fieldUsername].SetValue(user)
	a.login[fieldPassword].Reset()
	a.focus = fieldPassword
	return a.focusCurrent(form)
}

func (a *authState) loggedIn() {
	a.login[fieldPassword].Reset()
	a.register[fieldPassword].Reset()
	a.focus = fieldPassword
	a.blur()
}

func (a *authState) setWidth(w int) {
	for i := range a.login {
		a.login[i].Width = w
		a.register[i].Width = w
	}
}

// handleAuthKey processes keyboard input while signed out.
func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.session.Form()
	switch msg.String() {
	case "ctrl+r":
		m.session.ToggleForms()
		m.auth.focus = fieldUsername
		cmd := m.auth.focusCurrent(m.session.Form())
		return m, cmd

	case "tab", "shift+tab", "up", "down":
		m.auth.focus = 1 - m.auth.focus
		cmd := m.auth.focusCurrent(form)
		return m, cmd

	case "enter":
		if m.auth.focus == fieldUsername {
			m.auth.focus = fieldPassword
			cmd := m.auth.focusCurrent(form)
			return m, cmd
		}
		cmd := m.submitAuth(form)
		return m, cmd
	}

	cmd := m.auth.update(form, msg)
	return m, cmd
}

func (m *Model) submitAuth(form todosync.Form) tea.Cmd {
	user, pass := m.auth.values(form)
	session := m.session
	if form == todosync.FormRegister {
		return m.dispatch(todosync.ActionRegister, func(ctx context.Context) (string, bool, error) {
			notice, err := session.Register(ctx, user, pass)
			return notice, false, err
		})
	}
	return m.dispatch(todosync.ActionLogin, func(ctx context.Context) (string, bool, error) {
		return "", false, session.Login(ctx, user, pass)
	})
}

// renderAuth renders the visible form centered in the content area.
func (m Model) renderAuth(height int) string {
	styles := m.theme.Styles()
	form := m.session.Form()
	in := m.auth.inputs(form)

	title, other := "Login", "register"
	if form == todosync.FormRegister {
		title, other = "Register", "login"
	}

	label := func(text string, field int) string {
		style := styles.MutedText
		if field == m.auth.focus && m.pane == PaneMain {
			style = styles.AccentText
		}
		return style.Render(padRight(text, 10))
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n\n")
	b.WriteString(label("Username", fieldUsername) + m.renderField(in[fieldUsername]))
	b.WriteString("\n")
	b.WriteString(label("Password", fieldPassword) + m.renderField(in[fieldPassword]))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter submit · ctrl+r " + other + " instead"))

	box := styles.PanelFocus
	if m.pane != PaneMain {
		box = styles.Panel
	}
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, box.Render(b.String()))
}

// renderField draws a text input on the input surface, lighter when focused.
func (m Model) renderField(in textinput.Model) string {
	styles := m.theme.Styles()
	if in.Focused() {
		return styles.InputFocus.Render(in.View())
	}
	return styles.Input.Render(in.View())
}
