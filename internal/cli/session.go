package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/tody/internal/app"
	"github.com/five82/tody/internal/todosync"
)

// withSession logs in, runs fn, prints the resulting list and logs out. A
// logout failure is reported only when fn succeeded.
func (a *App) withSession(cmd *cobra.Command, fn func(ctx context.Context, s *todosync.Session) error) (err error) {
	env, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	ctx := cmd.Context()
	loginErr := a.login(cmd, env)
	// A failed initial load still leaves a session open.
	if env.Session.View() == todosync.ViewTodos {
		defer func() {
			if lerr := env.Session.Logout(ctx); lerr != nil && err == nil {
				err = lerr
			}
		}()
	}
	if loginErr != nil {
		return loginErr
	}

	if fn != nil {
		if err := fn(ctx, env.Session); err != nil {
			return err
		}
	}
	return printRows(cmd.OutOrStdout(), env.Session.Rows())
}

func (a *App) login(cmd *cobra.Command, env *app.Env) error {
	user, err := a.username(env.Config)
	if err != nil {
		return err
	}
	pw, err := a.password(cmd)
	if err != nil {
		return err
	}
	return env.Session.Login(cmd.Context(), user, pw)
}

func printRows(w io.Writer, rows []todosync.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No todos.")
		return err
	}
	for _, row := range rows {
		box := "[ ]"
		if row.Completed {
			box = "[x]"
		}
		if _, err := fmt.Fprintf(w, "%4s  %s %s\n", row.ID, box, row.Title); err != nil {
			return err
		}
	}
	return nil
}
