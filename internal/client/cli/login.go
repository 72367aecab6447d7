package cli

import (
	"context"
	"errors"
	"fmt"

	clientapi "github.com/ndmitry/pricetrack/internal/client/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	user, err := c.session.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, clientapi.ErrInvalidCredentials) {
			return fmt.Errorf("invalid username or password")
		}
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", user.Username)
	c.io.Println()
	c.io.Println("Your session has been saved securely.")

	return nil
}
