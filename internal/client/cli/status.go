package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runStatus(ctx context.Context, args []string) error {
	c.io.Println("=== Sync Status ===")
	c.io.Println()

	if len(args) > 0 {
		extID := args[0]
		n, err := c.dataService.BytesInUse(ctx, extID)
		if err != nil {
			return fmt.Errorf("failed to get data size: %w", err)
		}
		c.io.Printf("Extension:     %s\n", extID)
		c.io.Printf("Bytes in use:  %d\n", n)
		c.io.Println()
	}

	// Получаем количество записей, ожидающих синхронизации
	pendingCount, err := c.syncService.GetPendingSyncCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending sync count: %w", err)
	}

	if pendingCount > 0 {
		c.io.Printf("⚠️  Pending sync: %d record(s) waiting to be synchronized\n", pendingCount)
		c.io.Println("Run 'extstorage sync' to synchronize with server.")
	} else {
		c.io.Println("✓ All data synchronized with server")
	}

	return nil
}
