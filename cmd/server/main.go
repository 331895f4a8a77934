package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/extstorage/internal/config"
	"github.com/iudanet/extstorage/internal/server"
	"github.com/iudanet/extstorage/internal/server/jwt"
	"github.com/iudanet/extstorage/internal/server/middleware"
	"github.com/iudanet/extstorage/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("extstorage-server", flag.ContinueOnError)
	cfg, err := config.ParseServerConfig(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		return 0
	}

	tokens, err := jwt.NewService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Выпуск токена для пользователя без запуска сервера
	if cfg.IssueToken != "" {
		token, expiresAt, err := tokens.IssueToken(cfg.IssueToken)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
			return 1
		}
		fmt.Println(token)
		fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format("2006-01-02 15:04:05 MST"))
		return 0
	}

	logger := cfg.NewLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, logger)
	defer limiter.Stop()

	router := server.NewRouter(server.RouterConfig{
		Logger:  logger,
		Storage: store,
		Tokens:  tokens,
		Limiter: limiter,
		Version: Version,
	})

	logger.Info("extstorage server starting", "version", Version, "addr", cfg.Addr, "db", cfg.DBPath)

	if err := server.New(cfg.Addr, router, logger).ListenAndServe(ctx); err != nil {
		logger.Error("server stopped with error", "error", err)
		return 1
	}

	logger.Info("server stopped")
	return 0
}

func printVersion() {
	fmt.Printf("extstorage server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
