package app

import (
	"context"
	"errors"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth/credentials"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/config"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/logger"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/user"
)

// seedUsers provisions the built-in lab accounts. A seed is skipped
// when its password is unset or the username already exists, so
// restarts against a persistent store stay idempotent.
func seedUsers(ctx context.Context, infra *Infra, cfg config.Config) error {
	seeds := []struct {
		username string
		password string
		role     user.Role
	}{
		{"admin", cfg.AdminPassword, user.RoleAdmin},
		{"user1", cfg.UserPassword, user.RoleUser},
	}

	for _, seed := range seeds {
		if seed.password == "" {
			continue
		}

		if _, err := infra.Users.FindByUsername(ctx, seed.username); err == nil {
			continue
		} else if !errors.Is(err, user.ErrNotFound) {
			return err
		}

		hash, err := credentials.HashPassword(seed.password)
		if err != nil {
			return err
		}

		created, err := infra.Users.Create(ctx, user.User{
			Username:     seed.username,
			Role:         seed.role,
			PasswordHash: hash,
		})
		if errors.Is(err, user.ErrUsernameTaken) {
			continue
		}
		if err != nil {
			return err
		}

		logger.Info("seed user created", map[string]any{
			"id":       created.ID,
			"username": created.Username,
			"role":     created.Role,
		})
	}

	return nil
}
