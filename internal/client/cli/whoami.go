package cli

import (
	"context"
)

func (c *Cli) runWhoami(ctx context.Context) error {
	user, err := c.session.CurrentUser(ctx)
	if err != nil {
		return wrapServiceError(err)
	}

	c.io.Printf("Username: %s\n", user.Username)
	for _, attr := range user.Attributes {
		c.io.Printf("%s: %s\n", attr.Name, attr.Value)
	}

	return nil
}
