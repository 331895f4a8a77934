// Package config loads client configuration from EXTSTORAGE_* environment
// variables, overridden by command-line flags.
package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds client configuration.
type Config struct {
	ServerURL   string        `env:"EXTSTORAGE_SERVER_URL"   envDefault:"http://localhost:8080"`
	DBPath      string        `env:"EXTSTORAGE_DB_PATH"      envDefault:"extstorage.db"`
	MetaPath    string        `env:"EXTSTORAGE_META_PATH"    envDefault:"extstorage-meta.db"`
	Token       string        `env:"EXTSTORAGE_TOKEN"`
	LogLevel    string        `env:"EXTSTORAGE_LOG_LEVEL"    envDefault:"warn"`
	HTTPTimeout time.Duration `env:"EXTSTORAGE_HTTP_TIMEOUT" envDefault:"30s"`
	ShowVersion bool
}

// ParseConfig parses environment and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.BoolVar(&cfg.ShowVersion, "version", false, "show version information")
	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "server URL")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to local record database")
	fs.StringVar(&cfg.MetaPath, "meta", cfg.MetaPath, "path to sync metadata database")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "bearer token for the server")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.DurationVar(&cfg.HTTPTimeout, "http-timeout", cfg.HTTPTimeout, "timeout for one server request")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level returns the parsed log level.
func (c Config) Level() (slog.Level, error) {
	return parseLevel(c.LogLevel)
}

// NewLogger creates a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return newLogger(w, c.LogLevel, slog.LevelWarn)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func newLogger(w io.Writer, levelText string, fallback slog.Level) *slog.Logger {
	level, err := parseLevel(levelText)
	if err != nil {
		level = fallback
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
