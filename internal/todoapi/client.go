package todoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// API is the set of todo service calls tody makes.
// It is implemented by *Client and can be faked in tests.
type API interface {
	Register(ctx context.Context, creds Credentials) (string, error)
	Login(ctx context.Context, creds Credentials) (string, error)
	Logout(ctx context.Context) error
	ListTodos(ctx context.Context) ([]Todo, error)
	CreateTodo(ctx context.Context, title string) (Todo, error)
	UpdateTodo(ctx context.Context, id ID, completed bool) (Todo, error)
	DeleteTodo(ctx context.Context, id ID) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the todo service over HTTP. The session cookie set by
// /login lives in the client's cookie jar.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultServer    = "127.0.0.1:4000"
	defaultUserAgent = "tody/0.1"
	requestTimeout   = 10 * time.Second
	maxErrorBody     = 64 * 1024
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the given server address. Bare host:port
// values are treated as http.
func NewClient(server string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Jar:     jar,
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized service address.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// Register creates an account and returns the server's acknowledgment.
func (c *Client) Register(ctx context.Context, creds Credentials) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	var payload messageResponse
	if err := c.do(ctx, http.MethodPost, "/register", creds, &payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// Login establishes a session; the cookie is kept in the jar.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	var payload messageResponse
	if err := c.do(ctx, http.MethodPost, "/login", creds, &payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodGet, "/logout", nil, nil)
}

// ListTodos fetches the caller's full todo collection in server order.
func (c *Client) ListTodos(ctx context.Context) ([]Todo, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateTodo adds a todo with the given title.
func (c *Client) CreateTodo(ctx context.Context, title string) (Todo, error) {
	if c == nil {
		return Todo{}, fmt.Errorf("client is nil")
	}
	var payload Todo
	if err := c.do(ctx, http.MethodPost, "/todos", createRequest{Title: title}, &payload); err != nil {
		return Todo{}, err
	}
	return payload, nil
}

// UpdateTodo sets the completed flag of a todo.
func (c *Client) UpdateTodo(ctx context.Context, id ID, completed bool) (Todo, error) {
	if c == nil {
		return Todo{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(string(id)) == "" {
		return Todo{}, fmt.Errorf("todo id required")
	}
	var payload Todo
	if err := c.do(ctx, http.MethodPut, todoPath(id), updateRequest{Completed: completed}, &payload); err != nil {
		return Todo{}, err
	}
	return payload, nil
}

// DeleteTodo removes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id ID) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(string(id)) == "" {
		return fmt.Errorf("todo id required")
	}
	return c.do(ctx, http.MethodDelete, todoPath(id), nil, nil)
}

func todoPath(id ID) string {
	return "/todos/" + url.PathEscape(string(id))
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path %q: %w", path, err)
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(method, path, resp)
	}
	if dest == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError reports a non-2xx response. Message holds the server's
// "error" field when the body carried one.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.StatusCode)
}

func newStatusError(method, path string, resp *http.Response) *StatusError {
	serr := &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return serr
	}
	var payload messageResponse
	if json.Unmarshal(raw, &payload) == nil {
		serr.Message = strings.TrimSpace(payload.Error)
	}
	return serr
}

// ServerMessage returns the server-supplied error text carried by err, or ""
// when err is not a StatusError or the server sent none.
func ServerMessage(err error) string {
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.Message
	}
	return ""
}

// IsStatusError reports whether err carries a non-2xx response.
func IsStatusError(err error) bool {
	var serr *StatusError
	return errors.As(err, &serr)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var serr *StatusError
	return errors.As(err, &serr) && serr.StatusCode == code
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = defaultServer
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server %q: %w", server, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse server %q: missing host", server)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
