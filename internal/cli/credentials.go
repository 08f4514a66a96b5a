package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/tody/internal/config"
)

var errNoPassword = errors.New("password required: pass --password, set " + config.EnvPassword + " or run in a terminal")

func (a *App) username(cfg config.Config) (string, error) {
	if a.Username != "" {
		return a.Username, nil
	}
	if cfg.Username != "" {
		return cfg.Username, nil
	}
	return "", errors.New("username required: pass --username or set " + config.EnvUsername)
}

// password resolves the password from the flag, the environment or an
// interactive prompt, in that order.
func (a *App) password(cmd *cobra.Command) (string, error) {
	if a.Password != "" {
		return a.Password, nil
	}
	if pw := config.Password(); pw != "" {
		return pw, nil
	}

	in, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(in.Fd())) {
		return "", errNoPassword
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	raw, err := term.ReadPassword(int(in.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimRight(string(raw), "\r\n")
	if pw == "" {
		return "", errNoPassword
	}
	return pw, nil
}
