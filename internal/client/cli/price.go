package cli

import (
	"context"
	"fmt"

	"github.com/ndmitry/pricetrack/pkg/api"
)

func (c *Cli) runPriceAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing product id. Usage: pricetrack price-add <id>")
	}
	productID := args[0]

	c.io.Println("=== Record Price ===")
	c.io.Println()

	entry, err := c.promptPriceEntry()
	if err != nil {
		return err
	}

	updated, err := c.products.AddPriceEntry(ctx, productID, entry)
	if err != nil {
		return wrapServiceError(err)
	}

	c.io.Println()
	c.io.Println("✓ Price recorded!")
	c.io.Printf("%s: %s (%d entries)\n",
		updated.Name,
		formatMoney(updated.LatestPrice, updated.LatestCurrency),
		len(updated.PriceHistory))

	return nil
}

func (c *Cli) runPriceEdit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: pricetrack price-edit <id> <price-entry-id>")
	}
	productID, priceEntryID := args[0], args[1]

	c.io.Println("=== Edit Price ===")
	c.io.Println()

	entry, err := c.promptPriceEntry()
	if err != nil {
		return err
	}
	entry.PriceEntryID = priceEntryID

	updated, err := c.products.EditPriceEntry(ctx, productID, entry)
	if err != nil {
		return wrapServiceError(err)
	}

	c.io.Println()
	c.io.Println("✓ Price updated!")
	c.io.Printf("%s: latest %s\n", updated.Name, formatMoney(updated.LatestPrice, updated.LatestCurrency))

	return nil
}

func (c *Cli) runPriceDelete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: pricetrack price-delete <id> <price-entry-id>")
	}
	productID, priceEntryID := args[0], args[1]

	updated, err := c.products.DeletePriceEntry(ctx, productID, priceEntryID)
	if err != nil {
		return wrapServiceError(err)
	}

	c.io.Println("✓ Price entry deleted!")
	c.io.Printf("%s: %d entries remain\n", updated.Name, len(updated.PriceHistory))

	return nil
}

// promptPriceEntry собирает поля одного наблюдения цены
func (c *Cli) promptPriceEntry() (api.PriceEntry, error) {
	price, err := c.promptPrice("Price")
	if err != nil {
		return api.PriceEntry{}, err
	}
	currency, err := c.promptRequired("Currency")
	if err != nil {
		return api.PriceEntry{}, err
	}
	store, err := c.promptOptional("Store")
	if err != nil {
		return api.PriceEntry{}, err
	}
	date, err := c.promptDate("Date")
	if err != nil {
		return api.PriceEntry{}, err
	}

	return api.PriceEntry{
		Date:     date,
		Store:    store,
		Price:    price,
		Currency: currency,
	}, nil
}
