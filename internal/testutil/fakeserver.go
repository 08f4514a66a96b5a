// Package testutil provides an in-memory todo service for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// SessionCookie is the cookie name the fake service issues on login.
const SessionCookie = "session"

// Todo is the fake service's storage shape.
type Todo struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	owner     string
}

// FakeServer implements the todo service contract in memory. Routes follow
// the real service: cookie sessions, per-user todos, integer ids.
type FakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]string // username -> password
	sessions map[string]string // token -> username
	todos    []Todo
	nextID   int64
	calls    map[string]int
	failures map[string]failure
}

type failure struct {
	status int
	body   any
}

// NewFakeServer starts a fake service. It is closed via t.Cleanup by callers.
func NewFakeServer() *FakeServer {
	f := &FakeServer{
		users:    make(map[string]string),
		sessions: make(map[string]string),
		calls:    make(map[string]int),
		failures: make(map[string]failure),
		nextID:   1,
	}

	r := mux.NewRouter()
	r.Use(f.countAndInject)
	r.HandleFunc("/register", f.handleRegister).Methods(http.MethodPost).Name("POST /register")
	r.HandleFunc("/login", f.handleLogin).Methods(http.MethodPost).Name("POST /login")
	r.HandleFunc("/logout", f.requireUser(f.handleLogout)).Methods(http.MethodGet).Name("GET /logout")
	r.HandleFunc("/todos", f.requireUser(f.handleList)).Methods(http.MethodGet).Name("GET /todos")
	r.HandleFunc("/todos", f.requireUser(f.handleCreate)).Methods(http.MethodPost).Name("POST /todos")
	r.HandleFunc("/todos/{id:[0-9]+}", f.requireUser(f.handleUpdate)).Methods(http.MethodPut).Name("PUT /todos/{id}")
	r.HandleFunc("/todos/{id:[0-9]+}", f.requireUser(f.handleDelete)).Methods(http.MethodDelete).Name("DELETE /todos/{id}")

	f.Server = httptest.NewServer(r)
	return f
}

// AddUser registers an account directly.
func (f *FakeServer) AddUser(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = password
}

// AddTodo seeds a todo for username and returns its id.
func (f *FakeServer) AddTodo(username, title string, completed bool) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.todos = append(f.todos, Todo{ID: id, Title: title, Completed: completed, owner: username})
	return id
}

// Todos returns a copy of username's todos in creation order.
func (f *FakeServer) Todos(username string) []Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.todosFor(username)
}

// Calls returns how many requests hit route, e.g. "POST /todos" or
// "PUT /todos/{id}".
func (f *FakeServer) Calls(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

// TotalCalls returns the number of requests served on any route.
func (f *FakeServer) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// Fail makes every following request on route answer with status and body
// (body may be nil). Pass status 0 to clear.
func (f *FakeServer) Fail(route string, status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if status == 0 {
		delete(f.failures, route)
		return
	}
	f.failures[route] = failure{status: status, body: body}
}

func (f *FakeServer) countAndInject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}
		f.mu.Lock()
		f.calls[name]++
		fail, ok := f.failures[name]
		f.mu.Unlock()
		if ok {
			if fail.body == nil {
				w.WriteHeader(fail.status)
				return
			}
			writeJSON(w, fail.status, fail.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type userHandler func(w http.ResponseWriter, r *http.Request, username string)

func (f *FakeServer) requireUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Login required"})
			return
		}
		f.mu.Lock()
		username, ok := f.sessions[cookie.Value]
		f.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Login required"})
			return
		}
		next(w, r, username)
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (f *FakeServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[creds.Username]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Username already exists"})
		return
	}
	f.users[creds.Username] = creds.Password
	writeJSON(w, http.StatusOK, map[string]string{"message": "Registration successful"})
}

func (f *FakeServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}
	f.mu.Lock()
	password, ok := f.users[creds.Username]
	if !ok || password != creds.Password {
		f.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	token := uuid.NewString()
	f.sessions[token] = creds.Username
	f.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: token, Path: "/", HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
}

func (f *FakeServer) handleLogout(w http.ResponseWriter, r *http.Request, _ string) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		f.mu.Lock()
		delete(f.sessions, cookie.Value)
		f.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (f *FakeServer) handleList(w http.ResponseWriter, _ *http.Request, username string) {
	f.mu.Lock()
	todos := f.todosFor(username)
	f.mu.Unlock()
	if todos == nil {
		todos = []Todo{}
	}
	writeJSON(w, http.StatusOK, todos)
}

func (f *FakeServer) handleCreate(w http.ResponseWriter, r *http.Request, username string) {
	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}
	f.mu.Lock()
	todo := Todo{ID: f.nextID, Title: body.Title, owner: username}
	f.nextID++
	f.todos = append(f.todos, todo)
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, todo)
}

func (f *FakeServer) handleUpdate(w http.ResponseWriter, r *http.Request, username string) {
	var body struct {
		Title     *string `json:"title"`
		Completed *bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, status := f.lookup(mux.Vars(r)["id"], username)
	if status != http.StatusOK {
		writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
		return
	}
	if body.Title != nil {
		f.todos[idx].Title = *body.Title
	}
	if body.Completed != nil {
		f.todos[idx].Completed = *body.Completed
	}
	writeJSON(w, http.StatusOK, f.todos[idx])
}

func (f *FakeServer) handleDelete(w http.ResponseWriter, r *http.Request, username string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, status := f.lookup(mux.Vars(r)["id"], username)
	if status != http.StatusOK {
		writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
		return
	}
	f.todos = append(f.todos[:idx], f.todos[idx+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

// lookup must be called with f.mu held.
func (f *FakeServer) lookup(rawID, username string) (int, int) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return -1, http.StatusNotFound
	}
	for i, todo := range f.todos {
		if todo.ID != id {
			continue
		}
		if todo.owner != username {
			return -1, http.StatusForbidden
		}
		return i, http.StatusOK
	}
	return -1, http.StatusNotFound
}

// todosFor must be called with f.mu held.
func (f *FakeServer) todosFor(username string) []Todo {
	var out []Todo
	for _, todo := range f.todos {
		if todo.owner == username {
			out = append(out, todo)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
