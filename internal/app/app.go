package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/five82/tody/internal/config"
	"github.com/five82/tody/internal/logs"
	"github.com/five82/tody/internal/prefs"
	"github.com/five82/tody/internal/scratch"
	"github.com/five82/tody/internal/todoapi"
	"github.com/five82/tody/internal/todosync"
	"github.com/five82/tody/internal/ui"
)

// Options configure the tody application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tody/prefs.toml
	Server     string // overrides config and TODY_SERVER when set
	// Console receives a copy of log records. The TUI must leave it nil.
	Console io.Writer
}

// Env is everything a tody front end needs: the loaded config, a logger and
// a session bound to the configured service.
type Env struct {
	Config  config.Config
	Logger  *logs.Logger
	Client  *todoapi.Client
	Session *todosync.Session
}

// Setup loads configuration and builds the logger, client and session.
// Callers must Close the returned Env.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if server := strings.TrimSpace(opts.Server); server != "" {
		cfg.Server = server
	}

	logger, err := logs.New(logs.Options{
		File:    cfg.LogFile,
		Level:   cfg.LogLevel,
		Console: opts.Console,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := todoapi.NewClient(cfg.Server, todoapi.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("init todo client: %w", err)
	}

	session := todosync.New(client, todosync.WithLogger(logger.Logger))
	return &Env{Config: cfg, Logger: logger, Client: client, Session: session}, nil
}

// Close releases the log file.
func (e *Env) Close() error {
	if e == nil {
		return nil
	}
	return e.Logger.Close()
}

// Run boots the tody TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.Console = nil
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		env.Logger.Warn("load prefs failed, using defaults", "error", err)
	}

	env.Logger.Info("starting tody", "server", env.Client.BaseURL())

	uiOpts := ui.Options{
		Context:            ctx,
		Session:            env.Session,
		Pad:                scratch.New(),
		Logger:             env.Logger.Logger,
		ThemeName:          userPrefs.Theme,
		Tab:                userPrefs.Tab,
		PrefsPath:          opts.PrefsPath,
		Username:           env.Config.Username,
		Phrases:            env.Config.Phrases,
		TypewriterInterval: env.Config.TypewriterInterval,
	}
	return ui.Run(uiOpts)
}
