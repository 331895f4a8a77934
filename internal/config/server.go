package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds configuration of the record collection server.
type ServerConfig struct {
	Addr        string        `env:"EXTSTORAGE_SERVER_ADDR"    envDefault:":8080"`
	DBPath      string        `env:"EXTSTORAGE_SERVER_DB_PATH" envDefault:"extstorage-server.db"`
	JWTSecret   string        `env:"EXTSTORAGE_JWT_SECRET"`
	TokenTTL    time.Duration `env:"EXTSTORAGE_TOKEN_TTL"      envDefault:"720h"`
	RateLimit   int           `env:"EXTSTORAGE_RATE_LIMIT"     envDefault:"120"`
	RateWindow  time.Duration `env:"EXTSTORAGE_RATE_WINDOW"    envDefault:"1m"`
	LogLevel    string        `env:"EXTSTORAGE_LOG_LEVEL"      envDefault:"info"`
	IssueToken  string
	ShowVersion bool
}

// ParseServerConfig parses environment and then flags into a ServerConfig.
func ParseServerConfig(fs *flag.FlagSet, args []string) (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}

	fs.BoolVar(&cfg.ShowVersion, "version", false, "show version information")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "address to listen on")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to server database")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "secret for signing bearer tokens")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "lifetime of issued tokens")
	fs.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "requests allowed per user in one window")
	fs.DurationVar(&cfg.RateWindow, "rate-window", cfg.RateWindow, "rate limit window")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.IssueToken, "issue-token", "", "print a token for the given user id and exit")
	if err := fs.Parse(args); err != nil {
		return ServerConfig{}, err
	}

	if cfg.ShowVersion {
		return cfg, nil
	}
	if err := cfg.validate(); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func (c ServerConfig) validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwt secret is required (EXTSTORAGE_JWT_SECRET or -jwt-secret)")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d", c.RateLimit)
	}
	if c.RateWindow <= 0 {
		return fmt.Errorf("rate window must be positive, got %s", c.RateWindow)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// NewLogger creates a text logger writing to w at the configured level.
func (c ServerConfig) NewLogger(w io.Writer) *slog.Logger {
	return newLogger(w, c.LogLevel, slog.LevelInfo)
}
