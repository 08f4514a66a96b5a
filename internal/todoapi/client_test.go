package todoapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/five82/tody/internal/testutil"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultServer {
		t.Fatalf("host = %q, want %q", u.Host, defaultServer)
	}

	u, err = parseBaseURL("https://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
}

func TestParseBaseURL_MissingHostFails(t *testing.T) {
	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want missing host error")
	}
}

func TestClient_SessionRoundTrip(t *testing.T) {
	t.Parallel()

	srv := testutil.NewFakeServer()
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	msg, err := c.Register(ctx, Credentials{Username: "ada", Password: "pw"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if msg != "Registration successful" {
		t.Fatalf("Register message = %q, want Registration successful", msg)
	}

	if _, err := c.ListTodos(ctx); !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("ListTodos before login error = %v, want 401", err)
	}

	if _, err := c.Login(ctx, Credentials{Username: "ada", Password: "pw"}); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	created, err := c.CreateTodo(ctx, "buy milk")
	if err != nil {
		t.Fatalf("CreateTodo returned error: %v", err)
	}
	if created.ID == "" || created.Title != "buy milk" || created.Completed {
		t.Fatalf("CreateTodo = %#v, want new incomplete todo", created)
	}

	updated, err := c.UpdateTodo(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("UpdateTodo returned error: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("UpdateTodo completed = false, want true")
	}

	todos, err := c.ListTodos(ctx)
	if err != nil {
		t.Fatalf("ListTodos returned error: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != created.ID || !todos[0].Completed {
		t.Fatalf("ListTodos = %#v, want the completed todo", todos)
	}

	if err := c.DeleteTodo(ctx, created.ID); err != nil {
		t.Fatalf("DeleteTodo returned error: %v", err)
	}
	todos, err = c.ListTodos(ctx)
	if err != nil {
		t.Fatalf("ListTodos returned error: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("ListTodos after delete = %#v, want empty", todos)
	}

	if err := c.Logout(ctx); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := c.ListTodos(ctx); !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("ListTodos after logout error = %v, want 401", err)
	}
}

func TestClient_ServerErrorMessageIsCaptured(t *testing.T) {
	t.Parallel()

	srv := testutil.NewFakeServer()
	t.Cleanup(srv.Close)
	srv.AddUser("ada", "pw")

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Register(context.Background(), Credentials{Username: "ada", Password: "x"})
	if err == nil {
		t.Fatalf("Register returned nil error, want duplicate user error")
	}
	if got := ServerMessage(err); got != "Username already exists" {
		t.Fatalf("ServerMessage = %q, want Username already exists", got)
	}

	_, err = c.Login(context.Background(), Credentials{Username: "ada", Password: "wrong"})
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("Login error = %v, want 401", err)
	}
	if got := ServerMessage(err); got != "Invalid credentials" {
		t.Fatalf("ServerMessage = %q, want Invalid credentials", got)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/todos":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/logout":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListTodos(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("ListTodos error = %v, want decode response error", err)
	}

	err = c.Logout(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("Logout error = %v, want status 500 error", err)
	}
	if ServerMessage(err) != "" {
		t.Fatalf("ServerMessage = %q, want empty for non-JSON body", ServerMessage(err))
	}
}

func TestClient_SendsJSONHeadersAndBody(t *testing.T) {
	t.Parallel()

	var gotContentType, gotAccept, gotUserAgent string
	var gotBody map[string]any
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		gotUserAgent = r.Header.Get("User-Agent")
		gotPath = r.URL.EscapedPath()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"a b","title":"x","completed":false}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithUserAgent("tody-test/1"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.UpdateTodo(context.Background(), ID("a b"), false); err != nil {
		t.Fatalf("UpdateTodo returned error: %v", err)
	}
	if gotContentType != "application/json" || gotAccept != "application/json" {
		t.Fatalf("headers = %q/%q, want application/json", gotContentType, gotAccept)
	}
	if gotUserAgent != "tody-test/1" {
		t.Fatalf("User-Agent = %q, want tody-test/1", gotUserAgent)
	}
	if gotPath != "/todos/a%20b" {
		t.Fatalf("path = %q, want /todos/a%%20b", gotPath)
	}
	if v, ok := gotBody["completed"].(bool); !ok || v {
		t.Fatalf("body = %#v, want completed=false", gotBody)
	}
}

func TestClient_TransportErrorIsWrapped(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.ListTodos(context.Background())
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("ListTodos error = %v, want execute request error", err)
	}
	var serr *StatusError
	if errors.As(err, &serr) {
		t.Fatalf("transport error should not be a StatusError")
	}
}

func TestClient_RequiresID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.DeleteTodo(context.Background(), ""); err == nil {
		t.Fatalf("DeleteTodo returned nil error, want error")
	}
	if _, err := c.UpdateTodo(context.Background(), " ", true); err == nil {
		t.Fatalf("UpdateTodo returned nil error, want error")
	}
}

func TestID_UnmarshalNumberAndString(t *testing.T) {
	var todos []Todo
	if err := json.Unmarshal([]byte(`[{"id":7,"title":"a"},{"id":"x-1","title":"b"}]`), &todos); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if todos[0].ID != "7" || todos[1].ID != "x-1" {
		t.Fatalf("ids = %q, %q, want 7, x-1", todos[0].ID, todos[1].ID)
	}
	out, err := json.Marshal(todos[0].ID)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(out) != "7" {
		t.Fatalf("Marshal = %s, want 7", out)
	}
}
