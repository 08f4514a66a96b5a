package todosync

import (
	"context"

	"github.com/five82/tody/internal/todoapi"
)

// MutationKind identifies the write that preceded a reconcile.
type MutationKind int

const (
	MutationAdd MutationKind = iota
	MutationToggle
	MutationDelete
)

func (k MutationKind) String() string {
	switch k {
	case MutationAdd:
		return "add"
	case MutationToggle:
		return "toggle"
	case MutationDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Mutation describes a write the service accepted.
type Mutation struct {
	Kind      MutationKind
	ID        todoapi.ID
	Title     string
	Completed bool
}

// Reconciler brings the rendered list back in line with the service after a
// mutation.
type Reconciler interface {
	Reconcile(ctx context.Context, s *Session, m Mutation) error
}

// FullReload refetches the whole collection after every mutation.
type FullReload struct{}

// Reconcile implements Reconciler.
func (FullReload) Reconcile(ctx context.Context, s *Session, _ Mutation) error {
	return s.LoadTodos(ctx)
}

// ReconcilerFunc adapts a function to Reconciler.
type ReconcilerFunc func(ctx context.Context, s *Session, m Mutation) error

// Reconcile implements Reconciler.
func (f ReconcilerFunc) Reconcile(ctx context.Context, s *Session, m Mutation) error {
	return f(ctx, s, m)
}
