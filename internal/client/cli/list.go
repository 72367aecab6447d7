package cli

import (
	"context"
)

func (c *Cli) runList(ctx context.Context) error {
	c.io.Println("=== Tracked Products ===")
	c.io.Println()

	list, err := c.products.List(ctx)
	if err != nil {
		return wrapServiceError(err)
	}

	if len(list) == 0 {
		c.io.Println("No products found.")
		c.io.Println()
		c.io.Println("Use 'pricetrack add' to start tracking your first product.")
		return nil
	}

	c.io.Printf("Found %d product(s):\n", len(list))
	c.io.Println()

	for i, product := range list {
		c.io.Printf("%d. %s %s\n", i+1, product.Name, trendMark(product.Trend))
		c.io.Printf("   ID:       %s\n", product.ID)
		if product.Brand != "" {
			c.io.Printf("   Brand:    %s\n", product.Brand)
		}
		c.io.Printf("   Category: %s\n", product.Category)
		c.io.Printf("   Latest:   %s", formatMoney(product.LatestPrice, product.LatestCurrency))
		if product.LatestStore != "" {
			c.io.Printf(" at %s", product.LatestStore)
		}
		c.io.Println()
		c.io.Println()
	}

	c.io.Println("Use 'pricetrack get <id>' to see full price history.")

	return nil
}
