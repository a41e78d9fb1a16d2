package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mlemaire/user-management-api/internal/auth"
	"github.com/mlemaire/user-management-api/internal/dto"
	"github.com/mlemaire/user-management-api/internal/models"
	"github.com/mlemaire/user-management-api/internal/store"
	"github.com/mlemaire/user-management-api/internal/validation"
)

// ErrSelfDelete rejects deleting one's own account. The check is by identity
// id, not role; admins are not exempt.
var ErrSelfDelete = errors.New("you cannot delete your own account")

type UserService struct {
	store  store.UserStore
	hasher auth.Hasher
}

func NewUserService(userStore store.UserStore, hasher auth.Hasher) *UserService {
	return &UserService{store: userStore, hasher: hasher}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.store.FindByID(ctx, id)
}

// Update applies a partial profile update. The password is re-hashed only
// when the request actually carries one; saving unrelated changes never
// re-hashes an already-hashed value. The store re-derives permissions from
// the role on save, so a role change refreshes the permission set here too.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := validation.Update(req); err != nil {
		return nil, err
	}

	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.PostalCode != "" {
		user.PostalCode = req.PostalCode
	}
	if req.BirthDate != "" {
		birthDate, perr := time.Parse(validation.BirthDateLayout, req.BirthDate)
		if perr == nil {
			user.BirthDate = birthDate
		}
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, herr := s.hasher.Hash(req.Password)
		if herr != nil {
			return nil, herr
		}
		user.Password = hash
	}

	if err := s.store.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// Delete removes the target account after rejecting self-deletion. It
// returns the deleted record so handlers can name it in the response.
func (s *UserService) Delete(ctx context.Context, callerID, targetID uuid.UUID) (*models.User, error) {
	if callerID == targetID {
		return nil, ErrSelfDelete
	}

	user, err := s.store.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, targetID); err != nil {
		return nil, err
	}

	return user, nil
}
