package cli

import (
	"context"
	"fmt"

	"github.com/ndmitry/pricetrack/internal/pricing"
)

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing product id. Usage: pricetrack get <id>")
	}
	productID := args[0]

	product, err := c.products.GetByID(ctx, productID)
	if err != nil {
		return wrapServiceError(err)
	}

	c.io.Printf("=== %s ===\n", product.Name)
	c.io.Println()
	c.io.Printf("ID:       %s\n", product.ID)
	if product.Brand != "" {
		c.io.Printf("Brand:    %s\n", product.Brand)
	}
	c.io.Printf("Category: %s\n", product.Category)
	if product.Description != "" {
		c.io.Printf("About:    %s\n", product.Description)
	}
	if len(product.Tags) > 0 {
		c.io.Printf("Tags:     %v\n", product.Tags)
	}

	c.io.Println()
	c.io.Printf("Latest price: %s", formatMoney(product.LatestPrice, product.LatestCurrency))
	if product.LatestStore != "" {
		c.io.Printf(" at %s", product.LatestStore)
	}
	if product.LatestPurchaseDate != "" {
		c.io.Printf(" on %s", product.LatestPurchaseDate)
	}
	c.io.Println()

	// Аналитика считается локально по истории, серверные поля не обязательны
	summary := pricing.Summarize(product.PriceHistory)
	change := pricing.PriceChange(product.PriceHistory)
	if len(product.PriceHistory) > 1 {
		c.io.Printf("Average:      %s\n", formatMoney(summary.AveragePrice, product.LatestCurrency))
		c.io.Printf("Lowest:       %s\n", formatMoney(summary.LowestPrice, product.LatestCurrency))
		c.io.Printf("Highest:      %s\n", formatMoney(summary.HighestPrice, product.LatestCurrency))
		c.io.Printf("Last change:  %+.2f (%+.1f%%) %s\n", change.Change, change.Percentage, trendMark(change.Trend))
	}

	c.io.Println()
	c.io.Printf("Price history (%d entries):\n", len(product.PriceHistory))
	for i, entry := range product.PriceHistory {
		c.io.Printf("%d. %s  %s", i+1, entry.Date, formatMoney(entry.Price, entry.Currency))
		if entry.Store != "" {
			c.io.Printf("  %s", entry.Store)
		}
		c.io.Println()
		c.io.Printf("   entry id: %s\n", entry.PriceEntryID)
	}

	return nil
}
