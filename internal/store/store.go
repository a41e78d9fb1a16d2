// Package store holds the credential store abstraction. Services depend on
// the UserStore interface only; the gorm-backed implementation is wired in
// at startup.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mlemaire/user-management-api/internal/models"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserStore is the persistence contract for user records. Implementations
// must enforce case-insensitive email uniqueness and surface it as
// ErrDuplicateEmail. Every write path normalizes the record first, so the
// role/permission invariant holds after each save.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
