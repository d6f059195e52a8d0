package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/learnhub/internal/client/auth"
)

const timeLayout = "2006-01-02 15:04"

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	session, err := c.auth.Stored(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'learnhub signin' or 'learnhub signup'.")
			return nil
		}
		return fmt.Errorf("failed to check session: %w", err)
	}

	remaining := time.Until(session.ExpiresAt)
	if remaining <= 0 {
		c.io.Println("Status: Session expired")
		c.io.Printf("Username: %s\n", session.Username)
		c.io.Println("⚠️  Please sign in again.")
		return nil
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("Server: %s\n", session.Server)
	c.printSession(session)
	c.io.Printf("Time remaining: %s\n", remaining.Round(time.Minute))

	// профиль на сервере может не совпадать со снимком в токене
	user, err := c.api.Me(ctx, session.Token)
	if err != nil {
		c.io.Printf("⚠️  Could not load profile: %v\n", explain(err))
		return nil
	}

	c.io.Println()
	c.io.Printf("Full name: %s\n", user.Fullname)
	c.io.Printf("XP: %d  Rank: %d  Streak: %d\n", user.XP, user.Rank, user.Streak)
	return nil
}
