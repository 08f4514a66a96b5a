package todoapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is the server-assigned todo identifier. The service currently sends
// integers but the client treats the value as opaque text.
type ID string

// UnmarshalJSON accepts both JSON numbers and JSON strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("todo id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric identifiers back as numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// Todo mirrors the objects returned by /todos.
type Todo struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Credentials is the body of /register and /login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// messageResponse covers the {message} / {error} envelopes used by the
// auth endpoints and by error responses.
type messageResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type createRequest struct {
	Title string `json:"title"`
}

type updateRequest struct {
	Completed bool `json:"completed"`
}
