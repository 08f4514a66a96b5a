package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			user, err := a.username(env.Config)
			if err != nil {
				return err
			}
			pw, err := a.password(cmd)
			if err != nil {
				return err
			}
			notice, err := env.Session.Register(cmd.Context(), user, pw)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), notice)
			return err
		},
	}
}

func newLoginCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check credentials and show the todo list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, nil)
		},
	}
}
