package cli

import (
	"context"

	"github.com/ndmitry/pricetrack/pkg/api"
)

func (c *Cli) runAdd(ctx context.Context) error {
	c.io.Println("=== Add Product ===")
	c.io.Println()

	name, err := c.promptRequired("Name")
	if err != nil {
		return err
	}
	category, err := c.promptRequired("Category")
	if err != nil {
		return err
	}
	brand, err := c.promptOptional("Brand")
	if err != nil {
		return err
	}
	description, err := c.promptOptional("Description")
	if err != nil {
		return err
	}

	price, err := c.promptPrice("Price")
	if err != nil {
		return err
	}
	currency, err := c.promptRequired("Currency")
	if err != nil {
		return err
	}
	store, err := c.promptOptional("Store")
	if err != nil {
		return err
	}
	date, err := c.promptDate("Purchase date")
	if err != nil {
		return err
	}

	product := api.NewProduct{
		Name:               name,
		Brand:              brand,
		Category:           category,
		Description:        description,
		LatestPrice:        price,
		LatestCurrency:     currency,
		LatestStore:        store,
		LatestPurchaseDate: date,
		PriceHistory: []api.PriceEntry{{
			Date:     date,
			Store:    store,
			Price:    price,
			Currency: currency,
		}},
	}

	created, err := c.products.Create(ctx, product)
	if err != nil {
		return wrapServiceError(err)
	}

	c.io.Println()
	c.io.Println("✓ Product added!")
	c.io.Printf("ID: %s\n", created.ID)

	return nil
}
