package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings tody reads from config.toml.
type Config struct {
	Server             string
	Username           string
	LogFile            string
	LogLevel           string
	RequestTimeout     time.Duration
	TypewriterInterval time.Duration
	Phrases            []string
}

const (
	defaultConfigPath         = "~/.config/tody/config.toml"
	defaultServer             = "http://127.0.0.1:4000"
	defaultLogFile            = "~/.local/state/tody/tody.log"
	defaultLogLevel           = "info"
	defaultRequestTimeout     = 10 * time.Second
	defaultTypewriterInterval = 150 * time.Millisecond
)

// DefaultPhrases are the typewriter lines shown when config.toml sets none.
var DefaultPhrases = []string{
	"add what ever task you want  ",
	"tap on the task after you completed   ",
	"click on the clear button   ",
	"or you can remove them individually   ",
}

// Environment overrides applied after the file is parsed.
const (
	EnvServer   = "TODY_SERVER"
	EnvUsername = "TODY_USERNAME"
	EnvPassword = "TODY_PASSWORD"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server:             defaultServer,
		LogFile:            mustExpand(defaultLogFile),
		LogLevel:           defaultLogLevel,
		RequestTimeout:     defaultRequestTimeout,
		TypewriterInterval: defaultTypewriterInterval,
		Phrases:            append([]string(nil), DefaultPhrases...),
	}
}

// Load locates and parses config.toml, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Server             string   `toml:"server"`
		Username           string   `toml:"username"`
		LogFile            string   `toml:"log_file"`
		LogLevel           string   `toml:"log_level"`
		RequestTimeout     string   `toml:"request_timeout"`
		TypewriterInterval string   `toml:"typewriter_interval"`
		Phrases            []string `toml:"phrases"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if server := strings.TrimSpace(raw.Server); server != "" {
		cfg.Server = server
	}
	cfg.Username = strings.TrimSpace(raw.Username)
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		cfg.LogLevel = level
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, defaultRequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.TypewriterInterval, err = parseDuration("typewriter_interval", raw.TypewriterInterval, defaultTypewriterInterval); err != nil {
		return Config{}, err
	}

	var phrases []string
	for _, p := range raw.Phrases {
		if strings.TrimSpace(p) == "" {
			continue
		}
		phrases = append(phrases, p)
	}
	if len(phrases) > 0 {
		cfg.Phrases = phrases
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Password returns the password supplied through the environment, if any.
func Password() string {
	return os.Getenv(EnvPassword)
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvServer)); v != "" {
		cfg.Server = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvUsername)); v != "" {
		cfg.Username = v
	}
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d <= 0 {
		return fallback, nil
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
