package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/extstorage/internal/client/api"
	"github.com/iudanet/extstorage/internal/client/cli"
	"github.com/iudanet/extstorage/internal/client/data"
	"github.com/iudanet/extstorage/internal/client/iocli"
	"github.com/iudanet/extstorage/internal/client/storage/boltdb"
	"github.com/iudanet/extstorage/internal/client/storage/sqlite"
	"github.com/iudanet/extstorage/internal/client/sync"
	"github.com/iudanet/extstorage/internal/config"
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
	stdio := iocli.NewStdio()

	fs := flag.NewFlagSet("extstorage", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintUsage(stdio) }

	cfg, err := config.ParseConfig(fs, os.Args[1:])
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

	// Получаем команду
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		return 1
	}

	logger := cfg.NewLogger(os.Stderr)

	// Ctrl-C прерывает синхронизацию, транзакции откатываются
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем SQLite storage с записями расширений
	recordStorage, err := sqlite.New(ctx, cfg.DBPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := recordStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Открываем BoltDB storage с метаданными синхронизации
	metadataStorage, err := boltdb.New(ctx, cfg.MetaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open metadata database: %v\n", err)
		return 1
	}
	defer func() {
		if err := metadataStorage.Close(); err != nil {
			logger.Error("failed to close metadata database", "error", err)
		}
	}()

	// Токен запрашиваем только для команд, которые ходят на сервер
	token := cfg.Token
	if cli.NeedsToken(args[0]) {
		token, err = cli.ResolveToken(stdio, cfg.Token)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	// Создаем API клиент
	apiClient := api.NewClient(cfg.ServerURL, token, cfg.HTTPTimeout)

	syncService := sync.NewService(apiClient, recordStorage, metadataStorage, logger)
	dataService := data.NewService(recordStorage)

	c := cli.New(stdio, dataService, syncService)

	// Выполняем команду
	if err := c.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUnknownCommand) {
			cli.PrintUsage(stdio)
		}
		return 1
	}
	return 0
}

func printVersion() {
	fmt.Printf("extstorage client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
