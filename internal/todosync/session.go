package todosync

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/five82/tody/internal/state"
	"github.com/five82/tody/internal/todoapi"
)

// View is the visible top-level state. The two are mutually exclusive.
type View int

const (
	ViewAuth View = iota
	ViewTodos
)

func (v View) String() string {
	if v == ViewTodos {
		return "todos"
	}
	return "auth"
}

// Form is the auth form currently shown.
type Form int

const (
	FormLogin Form = iota
	FormRegister
)

func (f Form) String() string {
	if f == FormRegister {
		return "register"
	}
	return "login"
}

// Row is one rendered todo: a checkbox bound to Completed, a label and a
// delete control, all addressed by ID.
type Row struct {
	ID        todoapi.ID
	Title     string
	Completed bool
}

// Session owns the auth/todo state of one client. Methods are safe to call
// from concurrent tea.Cmds.
type Session struct {
	api        todoapi.API
	store      *state.Store
	logger     *slog.Logger
	reconciler Reconciler

	mu   sync.RWMutex
	view View
	form Form
	user string
}

// Option customizes a Session.
type Option func(*Session)

// WithReconciler replaces the post-mutation strategy. The default is FullReload.
func WithReconciler(r Reconciler) Option {
	return func(s *Session) {
		if r != nil {
			s.reconciler = r
		}
	}
}

// WithLogger sets the logger used for action outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore shares an existing render store.
func WithStore(store *state.Store) Option {
	return func(s *Session) {
		if store != nil {
			s.store = store
		}
	}
}

// New builds a Session in the anonymous state with the login form shown.
func New(api todoapi.API, opts ...Option) *Session {
	s := &Session{
		api:        api,
		store:      &state.Store{},
		logger:     slog.New(slog.DiscardHandler),
		reconciler: FullReload{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// View returns the visible top-level state.
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Form returns the auth form currently shown.
func (s *Session) Form() Form {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.form
}

// User returns the name the session logged in with, or "".
func (s *Session) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Rows returns the rendered todo list in received order.
func (s *Session) Rows() []Row {
	snap := s.store.Snapshot()
	rows := make([]Row, 0, len(snap.Todos))
	for _, t := range snap.Todos {
		rows = append(rows, Row{ID: t.ID, Title: t.Title, Completed: t.Completed})
	}
	return rows
}

// Snapshot exposes the underlying render store snapshot.
func (s *Session) Snapshot() state.Snapshot {
	return s.store.Snapshot()
}

// ToggleForms flips between the login and registration forms.
func (s *Session) ToggleForms() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form == FormLogin {
		s.form = FormRegister
	} else {
		s.form = FormLogin
	}
}

// Register creates an account. On success it returns MsgRegistered and
// switches to the login form.
func (s *Session) Register(ctx context.Context, username, password string) (string, error) {
	if _, err := s.api.Register(ctx, todoapi.Credentials{Username: username, Password: password}); err != nil {
		return "", s.fail(ActionRegister, err)
	}
	s.mu.Lock()
	s.form = FormLogin
	s.mu.Unlock()
	s.logger.Info("registered", slog.String("username", username))
	return MsgRegistered, nil
}

// Login opens a session, switches to the todo view and loads the list. A
// failed load after a successful login is reported as an ActionLoad failure;
// the view still switches.
func (s *Session) Login(ctx context.Context, username, password string) error {
	if _, err := s.api.Login(ctx, todoapi.Credentials{Username: username, Password: password}); err != nil {
		return s.fail(ActionLogin, err)
	}
	s.mu.Lock()
	s.view = ViewTodos
	s.user = username
	s.mu.Unlock()
	s.logger.Info("logged in", slog.String("username", username))
	return s.LoadTodos(ctx)
}

// Logout ends the session, switches back to the auth view and clears the
// rendered list. On failure the view is left unchanged.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		return s.fail(ActionLogout, err)
	}
	s.mu.Lock()
	s.view = ViewAuth
	s.user = ""
	s.mu.Unlock()
	s.store.Clear()
	s.logger.Info("logged out")
	return nil
}

// LoadTodos fetches the full collection and replaces the rendered list. On
// failure the previous rendering stays.
func (s *Session) LoadTodos(ctx context.Context) error {
	todos, err := s.api.ListTodos(ctx)
	if err != nil {
		failure := s.fail(ActionLoad, err)
		s.store.Fail(failure)
		return failure
	}
	s.RenderTodos(todos)
	s.logger.Debug("todos loaded", slog.Int("count", len(todos)))
	return nil
}

// RenderTodos rebuilds the rendered list from todos, one row per item.
func (s *Session) RenderTodos(todos []todoapi.Todo) {
	s.store.Replace(todos)
}

// AddTodo creates a todo and reconciles. A blank title is ignored without a
// network call. added reports whether the service accepted the todo, so the
// caller knows to clear its input even if the follow-up reload fails.
func (s *Session) AddTodo(ctx context.Context, title string) (added bool, err error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, nil
	}
	created, err := s.api.CreateTodo(ctx, title)
	if err != nil {
		return false, s.fail(ActionAdd, err)
	}
	s.logger.Debug("todo added", slog.String("id", created.ID.String()))
	return true, s.reconcile(ctx, Mutation{Kind: MutationAdd, ID: created.ID, Title: title})
}

// ToggleTodo sets the completed flag of id and reconciles.
func (s *Session) ToggleTodo(ctx context.Context, id todoapi.ID, completed bool) error {
	if _, err := s.api.UpdateTodo(ctx, id, completed); err != nil {
		return s.fail(ActionToggle, err)
	}
	s.logger.Debug("todo updated", slog.String("id", id.String()), slog.Bool("completed", completed))
	return s.reconcile(ctx, Mutation{Kind: MutationToggle, ID: id, Completed: completed})
}

// DeleteTodo removes id and reconciles.
func (s *Session) DeleteTodo(ctx context.Context, id todoapi.ID) error {
	if err := s.api.DeleteTodo(ctx, id); err != nil {
		return s.fail(ActionDelete, err)
	}
	s.logger.Debug("todo deleted", slog.String("id", id.String()))
	return s.reconcile(ctx, Mutation{Kind: MutationDelete, ID: id})
}

func (s *Session) reconcile(ctx context.Context, m Mutation) error {
	return s.reconciler.Reconcile(ctx, s, m)
}

func (s *Session) fail(action Action, err error) *Failure {
	failure := newFailure(action, err)
	s.logger.Warn("action failed",
		slog.String("action", string(action)),
		slog.String("error", err.Error()),
	)
	return failure
}
