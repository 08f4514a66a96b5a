package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/tody/internal/todoapi"
)

// Snapshot is the todo list as last rendered.
type Snapshot struct {
	Todos       []todoapi.Todo
	Loaded      bool // at least one successful load since the last Clear
	LastUpdated time.Time
	LastError   error
}

// Store holds the rendered todo list. Reloads run on their own goroutines, so
// whichever Replace lands last wins.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Replace swaps in a freshly fetched list and clears any recorded error.
func (s *Store) Replace(todos []todoapi.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Todos = cloneTodos(todos)
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
}

// Clear empties the list, as on logout or at the start of a reload.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = Snapshot{LastUpdated: time.Now()}
}

// Fail records err without touching the list.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Todos = cloneTodos(s.snapshot.Todos)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneTodos(items []todoapi.Todo) []todoapi.Todo {
	if len(items) == 0 {
		return nil
	}
	dup := make([]todoapi.Todo, len(items))
	copy(dup, items)
	return dup
}
