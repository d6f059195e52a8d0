package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/iudanet/learnhub/internal/client/storage"
	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/pkg/api"
)

func (c *Cli) runSignup(ctx context.Context, args []string) error {
	c.io.Println("=== Sign up ===")
	c.io.Println()

	req := api.SignupRequest{}
	if slices.Contains(args, "--admin") {
		req.Role = models.RoleAdmin
	}

	var err error
	if req.Email, err = c.io.ReadInput("Email: "); err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	if req.Username, err = c.io.ReadInput("Username: "); err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if req.Fullname, err = c.io.ReadInput("Full name: "); err != nil {
		return fmt.Errorf("failed to read full name: %w", err)
	}

	password, interactive, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}
	if interactive {
		confirm, err := c.io.ReadPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if confirm != password {
			return fmt.Errorf("passwords do not match")
		}
	}
	req.Password = password

	session, err := c.auth.Signup(ctx, req)
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Account created!")
	c.printSession(session)
	return nil
}

func (c *Cli) runSignin(ctx context.Context, args []string) error {
	c.io.Println("=== Sign in ===")
	c.io.Println()

	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = c.io.ReadInput("Email: "); err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}

	password, _, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}

	session, err := c.auth.Signin(ctx, email, password)
	if err != nil {
		return fmt.Errorf("signin failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Signed in!")
	c.printSession(session)
	return nil
}

func (c *Cli) runSignout(ctx context.Context) error {
	if err := c.auth.Signout(ctx); err != nil {
		return fmt.Errorf("signout failed: %w", err)
	}

	c.io.Println("✓ Signed out. Your local session has been deleted.")
	return nil
}

func (c *Cli) printSession(session *storage.AuthData) {
	c.io.Printf("Username: %s\n", session.Username)
	c.io.Printf("Role: %s\n", session.Role)
	c.io.Printf("Session expires: %s\n", session.ExpiresAt.Local().Format(timeLayout))
}
