package cli

import (
	"context"
	"fmt"

	"github.com/ndmitry/pricetrack/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	state, err := c.session.State(ctx)
	if err != nil {
		return fmt.Errorf("failed to check session state: %w", err)
	}

	c.io.Printf("Token state: %s\n", state)

	switch state {
	case auth.StateUnauthenticated:
		c.io.Println()
		c.io.Println("Run 'pricetrack login' to authenticate.")
		return nil
	case auth.StateExpired:
		c.io.Println("Access token has expired, it will be refreshed on the next request.")
	}

	isAuth, err := c.session.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	c.io.Println()
	if !isAuth {
		c.io.Println("Status: Not authenticated")
		c.io.Println("Run 'pricetrack login' to authenticate.")
		return nil
	}

	c.io.Println("Status: Authenticated")
	if user, err := c.session.CurrentUser(ctx); err == nil {
		c.io.Printf("Username: %s\n", user.Username)
	}

	return nil
}
