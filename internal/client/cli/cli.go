package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/extstorage/internal/client/data"
	"github.com/iudanet/extstorage/internal/client/iocli"
	"github.com/iudanet/extstorage/internal/client/sync"
)

// ErrUnknownCommand is returned by Run for commands it does not know.
var ErrUnknownCommand = errors.New("unknown command")

type Cli struct {
	io          iocli.IO
	dataService data.Service
	syncService sync.Service
}

func New(io iocli.IO, dataService data.Service, syncService sync.Service) *Cli {
	return &Cli{
		io:          io,
		dataService: dataService,
		syncService: syncService,
	}
}

// Run выполняет команду с аргументами
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "set":
		return c.runSet(ctx, args)
	case "get":
		return c.runGet(ctx, args)
	case "remove":
		return c.runRemove(ctx, args)
	case "clear":
		return c.runClear(ctx, args)
	case "status":
		return c.runStatus(ctx, args)
	case "sync":
		return c.runSync(ctx)
	case "reset-sync":
		return c.runResetSync(ctx, args)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// PrintUsage выводит справку по командам
func PrintUsage(io iocli.IO) {
	io.Println("extstorage - extension storage with server sync")
	io.Println()
	io.Println("Usage:")
	io.Println("  extstorage [OPTIONS] COMMAND [ARGS]")
	io.Println()
	io.Println("Options:")
	io.Println("  --version            Show version information")
	io.Println("  --server URL         Server URL (env EXTSTORAGE_SERVER_URL)")
	io.Println("  --db PATH            Path to local record database (env EXTSTORAGE_DB_PATH)")
	io.Println("  --meta PATH          Path to sync metadata database (env EXTSTORAGE_META_PATH)")
	io.Println("  --token TOKEN        Bearer token for the server (env EXTSTORAGE_TOKEN, asked for if unset)")
	io.Println("  --log-level LEVEL    debug, info, warn or error (env EXTSTORAGE_LOG_LEVEL)")
	io.Println()
	io.Println("Commands:")
	io.Println("  set <ext-id> <json-object>   Merge keys into extension data")
	io.Println("  get <ext-id> [key...]        Show extension data")
	io.Println("  remove <ext-id> <key...>     Remove keys from extension data")
	io.Println("  clear <ext-id>               Remove all extension data")
	io.Println("  status [ext-id]              Show pending changes and data size")
	io.Println("  sync                         Synchronize local data with server")
	io.Println("  reset-sync [--yes]           Forget server state and upload everything again")
	io.Println()
	io.Println("Examples:")
	io.Println(`  extstorage set addon@example.com '{"theme":"dark"}'`)
	io.Println("  extstorage get addon@example.com theme")
	io.Println("  extstorage --server https://example.com sync")
}
