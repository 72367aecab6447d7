package cli

import (
	"context"
	"fmt"

	"github.com/ndmitry/pricetrack/pkg/api"
)

func (c *Cli) runEdit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing product id. Usage: pricetrack edit <id>")
	}
	productID := args[0]

	current, err := c.products.GetByID(ctx, productID)
	if err != nil {
		return wrapServiceError(err)
	}

	c.io.Printf("=== Edit %s ===\n", current.Name)
	c.io.Println("Press Enter to keep the current value.")
	c.io.Println()

	var patch api.ProductPatch

	name, err := c.promptKeep("Name", current.Name)
	if err != nil {
		return err
	}
	if name != current.Name {
		patch.Name = &name
	}

	brand, err := c.promptKeep("Brand", current.Brand)
	if err != nil {
		return err
	}
	if brand != current.Brand {
		patch.Brand = &brand
	}

	category, err := c.promptKeep("Category", current.Category)
	if err != nil {
		return err
	}
	if category != current.Category {
		patch.Category = &category
	}

	description, err := c.promptKeep("Description", current.Description)
	if err != nil {
		return err
	}
	if description != current.Description {
		patch.Description = &description
	}

	if patch == (api.ProductPatch{}) {
		c.io.Println()
		c.io.Println("Nothing to change.")
		return nil
	}

	updated, err := c.products.Update(ctx, productID, patch)
	if err != nil {
		return wrapServiceError(err)
	}

	c.io.Println()
	c.io.Println("✓ Product updated!")
	c.io.Printf("Name: %s\n", updated.Name)

	return nil
}

// promptKeep - пустой ввод оставляет текущее значение
func (c *Cli) promptKeep(name, current string) (string, error) {
	value, err := c.io.ReadInput(fmt.Sprintf("%s [%s]: ", name, current))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if value == "" {
		return current, nil
	}
	return value, nil
}
