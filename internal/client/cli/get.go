package cli

import (
	"context"
	"encoding/json"
	"fmt"
)

func (c *Cli) runGet(ctx context.Context, args []string) error {
	// Проверяем наличие ID
	if len(args) == 0 {
		return fmt.Errorf("missing extension id. Usage: extstorage get <ext-id> [key...]")
	}

	extID := args[0]

	values, err := c.dataService.Get(ctx, extID, args[1:])
	if err != nil {
		return fmt.Errorf("failed to get data: %w", err)
	}

	// Ключи выводятся в отсортированном порядке
	out, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format data: %w", err)
	}

	if _, err := c.io.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
