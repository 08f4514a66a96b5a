package todosync

import (
	"github.com/five82/tody/internal/todoapi"
)

// Action names a user-facing operation. It is also the "action" attribute of
// the warn log written when the operation fails.
type Action string

const (
	ActionRegister Action = "register"
	ActionLogin    Action = "login"
	ActionLogout   Action = "logout"
	ActionLoad     Action = "load"
	ActionAdd      Action = "add"
	ActionToggle   Action = "toggle"
	ActionDelete   Action = "delete"
)

// Failure is the single notification produced by a failed action. Error
// returns the text shown to the user; Unwrap exposes the underlying cause.
type Failure struct {
	Action  Action
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// Notification text. Register and login prefer the server's own error
// message when it sends one.
const (
	MsgRegistered        = "Registration successful! Please login."
	msgRegisterRejected  = "Registration failed"
	msgRegisterTransport = "Error during registration"
	msgLoginRejected     = "Login failed"
	msgLoginTransport    = "Error during login"
	msgLogout            = "Error during logout"
	msgLoad              = "Error loading todos"
	msgAdd               = "Error adding todo"
	msgToggle            = "Error updating todo"
	msgDelete            = "Error deleting todo"
)

func newFailure(action Action, err error) *Failure {
	return &Failure{Action: action, Message: failureMessage(action, err), Err: err}
}

func failureMessage(action Action, err error) string {
	switch action {
	case ActionRegister:
		return authMessage(err, msgRegisterRejected, msgRegisterTransport)
	case ActionLogin:
		return authMessage(err, msgLoginRejected, msgLoginTransport)
	case ActionLogout:
		return msgLogout
	case ActionLoad:
		return msgLoad
	case ActionAdd:
		return msgAdd
	case ActionToggle:
		return msgToggle
	case ActionDelete:
		return msgDelete
	default:
		return string(action) + " failed"
	}
}

// authMessage picks the server's message, then the rejection fallback for a
// non-2xx answer without one, then the transport fallback.
func authMessage(err error, rejected, transport string) string {
	if msg := todoapi.ServerMessage(err); msg != "" {
		return msg
	}
	if todoapi.IsStatusError(err) {
		return rejected
	}
	return transport
}
