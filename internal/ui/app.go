package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tody/internal/prefs"
	"github.com/five82/tody/internal/scratch"
	"github.com/five82/tody/internal/todosync"
	"github.com/five82/tody/internal/typewriter"
)

// Pane is the panel that has the keyboard.
type Pane int

const (
	// PaneMain shows the auth forms or the todo list, depending on the session.
	PaneMain Pane = iota
	// PanePad shows the local scratch pad.
	PanePad
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Session   *todosync.Session
	Pad       *scratch.Pad
	Logger    *slog.Logger
	ThemeName string
	Tab       string // prefs.TabTodos or prefs.TabPad
	PrefsPath string
	Username  string

	Phrases            []string
	TypewriterInterval time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	session   *todosync.Session
	pad       *scratch.Pad
	logger    *slog.Logger
	keys      keyMap
	prefsPath string
	now       func() time.Time

	// UI state
	theme    Theme
	pane     Pane
	width    int
	height   int
	ready    bool
	showHelp bool
	helpView viewport.Model
	busy     int

	typer  typewriter.Model
	toasts []Toast

	auth  authState
	todos todoState
	scr   padState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	pad := opts.Pad
	if pad == nil {
		pad = scratch.New()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:       ctx,
		session:   opts.Session,
		pad:       pad,
		logger:    logger,
		keys:      DefaultKeyMap(),
		prefsPath: prefsPath,
		now:       time.Now,
		theme:     GetTheme(themeName),
		typer:     typewriter.New(opts.Phrases, opts.TypewriterInterval),
		auth:      newAuthState(opts.Username),
		todos:     newTodoState(),
		scr:       newPadState(),
	}
	if opts.Tab == prefs.TabPad {
		m.pane = PanePad
		m.auth.blur()
	}
	m.syncSession()
	m.syncPad()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.typer.Init(),
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeInputs()
		return m, nil

	case typewriter.TickMsg:
		var cmd tea.Cmd
		m.typer, cmd = m.typer.Update(msg)
		return m, cmd

	case actionMsg:
		return m.handleAction(msg)

	case toastTickMsg:
		m.expireToasts()
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey routes keyboard input: always-on keys first, then the active pane.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		return m.handleHelpKey(msg)
	}

	switch msg.String() {
	case "f1":
		m.openHelp()
		return m, nil
	case "ctrl+p":
		if m.pane == PanePad {
			return m.switchPane(PaneMain)
		}
		return m.switchPane(PanePad)
	}

	if m.pane == PanePad {
		return m.handlePadKey(msg)
	}
	if m.session.View() == todosync.ViewAuth {
		return m.handleAuthKey(msg)
	}
	return m.handleTodosKey(msg)
}

// handleGlobalKey covers keys that only apply while no input has focus.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "?":
		m.openHelp()
		return m, nil, true
	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil, true
	case "tab":
		next := PanePad
		if m.pane == PanePad {
			next = PaneMain
		}
		var cmd tea.Cmd
		m, cmd = m.switchPane(next)
		return m, cmd, true
	}
	return m, nil, false
}

func (m Model) switchPane(p Pane) (Model, tea.Cmd) {
	m.pane = p
	m.blurAll()
	var cmd tea.Cmd
	if p == PaneMain && m.session.View() == todosync.ViewAuth {
		cmd = m.auth.focusCurrent(m.session.Form())
	}
	m.savePrefs()
	return m, cmd
}

func (m *Model) blurAll() {
	m.todos.blur()
	m.scr.blur()
	m.auth.blur()
}

func (m *Model) savePrefs() {
	tab := prefs.TabTodos
	if m.pane == PanePad {
		tab = prefs.TabPad
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Tab: tab}); err != nil {
		m.logger.Warn("save prefs failed", slog.String("error", err.Error()))
	}
}

// updateFocusedInput forwards non-key messages, such as cursor blinks, to the
// focused text input.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.pane == PanePad:
		cmd = m.scr.update(msg)
	case m.session.View() == todosync.ViewAuth:
		cmd = m.auth.update(m.session.Form(), msg)
	default:
		cmd = m.todos.updateInput(msg)
	}
	return m, cmd
}

func (m *Model) resizeInputs() {
	width := m.width / 2
	if width < 20 {
		width = 20
	}
	m.auth.setWidth(width)
	m.todos.input.Width = width
	m.scr.setWidth(width)
}

// syncSession copies the session's rendered rows into the model.
func (m *Model) syncSession() {
	if m.session == nil {
		return
	}
	m.todos.rows = m.session.Rows()
	m.todos.clamp()
}

// Messages

// actionMsg reports a finished todosync call.
type actionMsg struct {
	action todosync.Action
	notice string
	added  bool
	err    error
}

// dispatch runs fn off the event loop and reports its outcome as an actionMsg.
func (m *Model) dispatch(action todosync.Action, fn func(ctx context.Context) (string, bool, error)) tea.Cmd {
	m.busy++
	ctx := m.ctx
	return func() tea.Msg {
		notice, added, err := fn(ctx)
		return actionMsg{action: action, notice: notice, added: added, err: err}
	}
}

func (m Model) handleAction(msg actionMsg) (tea.Model, tea.Cmd) {
	if m.busy > 0 {
		m.busy--
	}
	m.syncSession()

	var cmds []tea.Cmd
	switch msg.action {
	case todosync.ActionRegister:
		if msg.err == nil {
			cmds = append(cmds, m.auth.registered(m.session.Form()))
		}
	case todosync.ActionLogin:
		if m.session.View() == todosync.ViewTodos {
			m.auth.loggedIn()
		}
	case todosync.ActionLogout:
		if msg.err == nil {
			m.todos.reset()
			if m.pane == PaneMain {
				cmds = append(cmds, m.auth.focusCurrent(m.session.Form()))
			}
		}
	case todosync.ActionAdd:
		if msg.added {
			m.todos.input.Reset()
		}
	}

	if msg.err != nil {
		cmds = append(cmds, m.pushToast(ToastError, msg.err.Error()))
	} else if msg.notice != "" {
		cmds = append(cmds, m.pushToast(ToastSuccess, msg.notice))
	}
	return m, tea.Batch(cmds...)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
