package database

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mlemaire/user-management-api/internal/auth"
	"github.com/mlemaire/user-management-api/internal/config"
	"github.com/mlemaire/user-management-api/internal/models"
	"github.com/mlemaire/user-management-api/internal/store"
)

// SeedAdmin creates the default administrator account on first boot when
// ADMIN_EMAIL and ADMIN_PASSWORD are configured. An existing account with
// that email is left untouched.
func SeedAdmin(ctx context.Context, userStore store.UserStore, hasher auth.Hasher, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		slog.Info("admin seeding skipped, ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	if _, err := userStore.FindByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:         uuid.New(),
		FirstName:  "Marie",
		LastName:   "Dubois",
		Email:      cfg.AdminEmail,
		Password:   hash,
		BirthDate:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		City:       "Lyon",
		PostalCode: "69001",
		Role:       models.RoleAdmin,
	}

	if err := userStore.Create(ctx, admin); err != nil {
		return err
	}

	slog.Info("admin user created", "email", admin.Email)
	return nil
}
