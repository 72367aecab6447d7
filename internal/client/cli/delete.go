package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing product id. Usage: pricetrack delete <id>")
	}
	productID := args[0]

	product, err := c.products.GetByID(ctx, productID)
	if err != nil {
		return wrapServiceError(err)
	}

	ok, err := c.confirm(fmt.Sprintf("Delete %q?", product.Name))
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Cancelled.")
		return nil
	}

	resp, err := c.products.Delete(ctx, productID)
	if err != nil {
		return wrapServiceError(err)
	}

	c.io.Printf("✓ %s\n", resp.Message)

	return nil
}
