package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/five82/tody/internal/testutil"
	"github.com/five82/tody/internal/todosync"
)

type fixture struct {
	srv    *testutil.FakeServer
	config string
	dir    string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	t.Setenv("TODY_SERVER", "")
	t.Setenv("TODY_USERNAME", "")
	t.Setenv("TODY_PASSWORD", "")

	srv := testutil.NewFakeServer()
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	body := "log_file = \"" + filepath.ToSlash(filepath.Join(dir, "tody.log")) + "\"\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return fixture{srv: srv, config: cfg, dir: dir}
}

func (f fixture) args(extra ...string) []string {
	return append([]string{"--config", f.config, "--server", f.srv.URL}, extra...)
}

func runCLI(t *testing.T, args []string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRegisterPrintsNotice(t *testing.T) {
	f := newFixture(t)

	stdout, _, err := runCLI(t, f.args("register", "-u", "ada", "--password", "pw"))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if strings.TrimSpace(stdout) != todosync.MsgRegistered {
		t.Fatalf("stdout = %q, want %q", stdout, todosync.MsgRegistered)
	}

	_, _, err = runCLI(t, f.args("register", "-u", "ada", "--password", "pw"))
	if err == nil || err.Error() != "Username already exists" {
		t.Fatalf("second register error = %v, want Username already exists", err)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("ada", "pw")

	_, _, err := runCLI(t, f.args("login", "-u", "ada", "--password", "nope"))
	var failure *todosync.Failure
	if !errors.As(err, &failure) || failure.Action != todosync.ActionLogin {
		t.Fatalf("login error = %v, want login failure", err)
	}
	if err.Error() != "Invalid credentials" {
		t.Fatalf("login error = %q, want Invalid credentials", err.Error())
	}
	if got := f.srv.Calls("GET /logout"); got != 0 {
		t.Fatalf("logout calls = %d, want 0", got)
	}
}

func TestTodosAddListsResultAndLogsOut(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("ada", "pw")

	stdout, _, err := runCLI(t, f.args("todos", "add", "buy", "milk", "-u", "ada", "--password", "pw"))
	if err != nil {
		t.Fatalf("todos add returned error: %v", err)
	}
	if !strings.Contains(stdout, "[ ] buy milk") {
		t.Fatalf("stdout = %q, want the new todo", stdout)
	}
	todos := f.srv.Todos("ada")
	if len(todos) != 1 || todos[0].Title != "buy milk" {
		t.Fatalf("server todos = %+v, want buy milk", todos)
	}
	if got := f.srv.Calls("GET /logout"); got != 1 {
		t.Fatalf("logout calls = %d, want 1", got)
	}
}

func TestTodosAddRejectsBlankTitle(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("ada", "pw")

	_, _, err := runCLI(t, f.args("todos", "add", "  ", "-u", "ada", "--password", "pw"))
	if err == nil || err.Error() != "title is empty" {
		t.Fatalf("error = %v, want title is empty", err)
	}
	if got := f.srv.Calls("POST /todos"); got != 0 {
		t.Fatalf("create calls = %d, want 0", got)
	}
}

func TestTodosToggleAndRemove(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("ada", "pw")
	id := f.srv.AddTodo("ada", "file taxes", false)
	f.srv.AddTodo("ada", "walk", false)

	t.Setenv("TODY_USERNAME", "ada")
	t.Setenv("TODY_PASSWORD", "pw")

	stdout, _, err := runCLI(t, f.args("todos", "toggle", "1"))
	if err != nil {
		t.Fatalf("todos toggle returned error: %v", err)
	}
	if !strings.Contains(stdout, "[x] file taxes") {
		t.Fatalf("stdout = %q, want completed todo", stdout)
	}
	if todos := f.srv.Todos("ada"); !todos[0].Completed || todos[0].ID != id {
		t.Fatalf("server todos = %+v, want first completed", todos)
	}

	stdout, _, err = runCLI(t, f.args("todos", "rm", "1"))
	if err != nil {
		t.Fatalf("todos rm returned error: %v", err)
	}
	if strings.Contains(stdout, "file taxes") || !strings.Contains(stdout, "walk") {
		t.Fatalf("stdout = %q, want only walk", stdout)
	}
}

func TestTodosToggleUnknownID(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("ada", "pw")

	_, _, err := runCLI(t, f.args("todos", "toggle", "99", "-u", "ada", "--password", "pw"))
	if err == nil || err.Error() != "todo not found: 99" {
		t.Fatalf("error = %v, want todo not found: 99", err)
	}
	if got := f.srv.Calls("PUT /todos/{id}"); got != 0 {
		t.Fatalf("update calls = %d, want 0", got)
	}
	if got := f.srv.Calls("GET /logout"); got != 1 {
		t.Fatalf("logout calls = %d, want 1", got)
	}
}

func TestTodosListEmpty(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("ada", "pw")

	stdout, _, err := runCLI(t, f.args("todos", "-u", "ada", "--password", "pw"))
	if err != nil {
		t.Fatalf("todos returned error: %v", err)
	}
	if strings.TrimSpace(stdout) != "No todos." {
		t.Fatalf("stdout = %q, want No todos.", stdout)
	}
}

func TestCredentialsRequired(t *testing.T) {
	f := newFixture(t)

	_, _, err := runCLI(t, f.args("login", "--password", "pw"))
	if err == nil || !strings.Contains(err.Error(), "username required") {
		t.Fatalf("error = %v, want username required", err)
	}

	_, _, err = runCLI(t, f.args("login", "-u", "ada"))
	if !errors.Is(err, errNoPassword) {
		t.Fatalf("error = %v, want errNoPassword", err)
	}
	if got := f.srv.TotalCalls(); got != 0 {
		t.Fatalf("requests = %d, want 0", got)
	}
}

func TestVerboseMirrorsLogsToStderr(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("ada", "pw")

	_, stderr, err := runCLI(t, f.args("login", "-v", "-u", "ada", "--password", "nope"))
	if err == nil {
		t.Fatalf("login returned nil error, want failure")
	}
	if !strings.Contains(stderr, "action failed") || !strings.Contains(stderr, "action=login") {
		t.Fatalf("stderr = %q, want the warn record", stderr)
	}
}

func TestLogsTailAndFilter(t *testing.T) {
	f := newFixture(t)
	lines := []string{
		`time=2026-01-01T10:00:00.000Z level=INFO msg="logged in" username=ada`,
		`time=2026-01-01T10:00:01.000Z level=DEBUG msg="todos loaded" count=2`,
		`time=2026-01-01T10:00:02.000Z level=WARN msg="action failed" action=add error=boom`,
	}
	logPath := filepath.Join(f.dir, "tody.log")
	if err := os.WriteFile(logPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	stdout, _, err := runCLI(t, f.args("logs", "-n", "2"))
	if err != nil {
		t.Fatalf("logs returned error: %v", err)
	}
	got := strings.Split(strings.TrimSpace(ansi.Strip(stdout)), "\n")
	if len(got) != 2 || !strings.Contains(got[0], "todos loaded") || !strings.Contains(got[1], "action failed") {
		t.Fatalf("logs -n 2 = %q, want last two records", got)
	}

	stdout, _, err = runCLI(t, f.args("logs", "--level", "warn"))
	if err != nil {
		t.Fatalf("logs returned error: %v", err)
	}
	got = strings.Split(strings.TrimSpace(ansi.Strip(stdout)), "\n")
	if len(got) != 1 || !strings.Contains(got[0], "action failed") {
		t.Fatalf("logs --level warn = %q, want the warn record", got)
	}

	if _, _, err := runCLI(t, f.args("logs", "--level", "loud")); err == nil {
		t.Fatalf("logs --level loud returned nil error")
	}
}

func TestLogsMissingFile(t *testing.T) {
	f := newFixture(t)

	stdout, _, err := runCLI(t, f.args("logs"))
	if err != nil {
		t.Fatalf("logs returned error: %v", err)
	}
	if !strings.HasPrefix(stdout, "No log entries") {
		t.Fatalf("stdout = %q, want no entries message", stdout)
	}
}
