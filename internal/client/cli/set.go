package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runSet(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: extstorage set <ext-id> <json-object>")
	}

	extID := args[0]
	if err := c.dataService.Set(ctx, extID, args[1]); err != nil {
		return err
	}

	c.io.Printf("✓ Data saved for %s\n", extID)
	return nil
}

func (c *Cli) runRemove(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: extstorage remove <ext-id> <key...>")
	}

	extID := args[0]
	if err := c.dataService.Remove(ctx, extID, args[1:]); err != nil {
		return err
	}

	c.io.Printf("✓ Removed %d key(s) from %s\n", len(args)-1, extID)
	return nil
}

func (c *Cli) runClear(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: extstorage clear <ext-id>")
	}

	extID := args[0]
	if err := c.dataService.Clear(ctx, extID); err != nil {
		return err
	}

	c.io.Printf("✓ Data cleared for %s\n", extID)
	return nil
}
