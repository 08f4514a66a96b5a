package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/tody/internal/todoapi"
	"github.com/five82/tody/internal/todosync"
)

func newTodosCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todos",
		Aliases: []string{"todo"},
		Short:   "List and change todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, nil)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return a.withSession(cmd, func(ctx context.Context, s *todosync.Session) error {
				added, err := s.AddTodo(ctx, title)
				if err != nil {
					return err
				}
				if !added {
					return errors.New("title is empty")
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a todo between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := todoapi.ID(args[0])
			return a.withSession(cmd, func(ctx context.Context, s *todosync.Session) error {
				row, ok := findRow(s.Rows(), id)
				if !ok {
					return errNotFound("todo", args[0])
				}
				return s.ToggleTodo(ctx, id, !row.Completed)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := todoapi.ID(args[0])
			return a.withSession(cmd, func(ctx context.Context, s *todosync.Session) error {
				if _, ok := findRow(s.Rows(), id); !ok {
					return errNotFound("todo", args[0])
				}
				return s.DeleteTodo(ctx, id)
			})
		},
	})

	return cmd
}

func findRow(rows []todosync.Row, id todoapi.ID) (todosync.Row, bool) {
	for _, row := range rows {
		if row.ID == id {
			return row, true
		}
	}
	return todosync.Row{}, false
}
