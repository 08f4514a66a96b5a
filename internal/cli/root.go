package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/tody/internal/app"
	"github.com/five82/tody/internal/config"
)

// App holds the persistent flags shared by every command.
type App struct {
	ConfigPath string
	PrefsPath  string
	Server     string
	Username   string
	Password   string
	Verbose    bool
}

func NewRootCmd() *cobra.Command {
	a := &App{}

	cmd := &cobra.Command{
		Use:           "tody",
		Short:         "Terminal client for the tody todo service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tody

  # One-shot commands
  tody register -u ada
  tody todos add buy milk
  tody todos toggle 3

  # Recent log lines
  tody logs -n 20 --level warn
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return app.Run(cmd.Context(), a.options())
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&a.ConfigPath, "config", "", "Path to config.toml (default ~/.config/tody/config.toml)")
	cmd.PersistentFlags().StringVar(&a.PrefsPath, "prefs", "", "Path to prefs.toml (default ~/.config/tody/prefs.toml)")
	cmd.PersistentFlags().StringVar(&a.Server, "server", "", "Todo service address (overrides config and "+config.EnvServer+")")
	cmd.PersistentFlags().StringVarP(&a.Username, "username", "u", "", "Account name (default from config or "+config.EnvUsername+")")
	cmd.PersistentFlags().StringVar(&a.Password, "password", "", "Account password (default "+config.EnvPassword+" or prompt)")
	cmd.PersistentFlags().BoolVarP(&a.Verbose, "verbose", "v", false, "Mirror log records to stderr")

	cmd.AddCommand(newRegisterCmd(a))
	cmd.AddCommand(newLoginCmd(a))
	cmd.AddCommand(newTodosCmd(a))
	cmd.AddCommand(newLogsCmd(a))

	return cmd
}

func (a *App) options() app.Options {
	return app.Options{
		ConfigPath: a.ConfigPath,
		PrefsPath:  a.PrefsPath,
		Server:     a.Server,
	}
}

// setup builds the environment for a one-shot command.
func (a *App) setup(cmd *cobra.Command) (*app.Env, error) {
	opts := a.options()
	if a.Verbose {
		opts.Console = cmd.ErrOrStderr()
	}
	return app.Setup(opts)
}
