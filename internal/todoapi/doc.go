// Package todoapi provides an HTTP client for the todo service.
//
// # Overview
//
// The service keeps sessions in a cookie set by /login. Client owns an
// http.Client whose cookie jar carries that cookie across calls, so callers
// never build auth headers themselves.
//
// # Client Usage
//
//	client, err := todoapi.NewClient("127.0.0.1:4000")
//	if err != nil {
//		return err
//	}
//	if _, err := client.Login(ctx, todoapi.Credentials{Username: "ada", Password: pw}); err != nil {
//		return err
//	}
//	todos, err := client.ListTodos(ctx)
//
// # Endpoints
//
//   - POST /register, POST /login: {username, password}, answer {message} or {error}
//   - GET /logout
//   - GET /todos: array of Todo
//   - POST /todos: {title}, answers the created Todo
//   - PUT /todos/{id}: {completed}, answers the updated Todo
//   - DELETE /todos/{id}
//
// # Errors
//
// Non-2xx responses become *StatusError. When the body is JSON with an
// "error" field the text is kept in Message; ServerMessage extracts it.
// Transport and decode failures are wrapped with fmt.Errorf and are never
// StatusErrors.
//
// Todo identifiers are opaque. The service sends integers today; ID accepts
// both numbers and strings.
package todoapi
