package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/extstorage/internal/client/api"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	c.io.Println()
	c.io.Println("Starting synchronization with server...")

	result, err := c.syncService.Sync(ctx)
	if errors.Is(err, api.ErrCollectionModified) {
		c.io.Println("Server data changed during synchronization, run 'extstorage sync' again.")
	}
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Synchronization completed successfully!")
	c.io.Println()
	c.io.Printf("Pulled from server: %d entries\n", result.PulledEntries)
	c.io.Printf("Taken from server:  %d entries\n", result.TakenEntries)
	c.io.Printf("Merged locally:     %d entries\n", result.MergedEntries)
	c.io.Printf("Deleted locally:    %d entries\n", result.DeletedEntries)
	c.io.Printf("Pushed to server:   %d entries\n", result.PushedEntries)
	if result.SkippedEntries > 0 {
		c.io.Printf("Rejected by server: %d entries\n", result.SkippedEntries)
	}

	return nil
}

func (c *Cli) runResetSync(ctx context.Context, args []string) error {
	confirmed := len(args) > 0 && (args[0] == "--yes" || args[0] == "-y")
	if !confirmed {
		answer, err := c.io.ReadInput("Forget server state and upload all data on next sync? [y/N]: ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			c.io.Println("Cancelled.")
			return nil
		}
	}

	if err := c.syncService.ResetSyncState(ctx); err != nil {
		return fmt.Errorf("failed to reset sync state: %w", err)
	}

	c.io.Println("✓ Sync state reset. Run 'extstorage sync' to upload all data.")
	return nil
}
