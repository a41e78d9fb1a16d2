package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mlemaire/user-management-api/internal/auth"
	"github.com/mlemaire/user-management-api/internal/dto"
	"github.com/mlemaire/user-management-api/internal/models"
	"github.com/mlemaire/user-management-api/internal/store"
	"github.com/mlemaire/user-management-api/internal/token"
	"github.com/mlemaire/user-management-api/internal/validation"
)

var (
	ErrEmailTaken = errors.New("this email address is already in use")
	// ErrInvalidCredentials is deliberately identical for an unknown email
	// and a wrong password, so responses cannot be used to enumerate
	// accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrMissingCredentials = errors.New("email and password are required")
)

type AuthService struct {
	store  store.UserStore
	hasher auth.Hasher
	tokens *token.Manager
}

func NewAuthService(userStore store.UserStore, hasher auth.Hasher, tokens *token.Manager) *AuthService {
	return &AuthService{store: userStore, hasher: hasher, tokens: tokens}
}

// Register validates every field, hashes the password and persists a new
// account with the user role. It never issues a token; login is a separate
// step.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if err := validation.Register(req); err != nil {
		return nil, err
	}

	if _, err := s.store.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	// Already validated above; parse cannot fail here.
	birthDate, _ := time.Parse(validation.BirthDateLayout, req.BirthDate)

	user := &models.User{
		ID:         uuid.New(),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Password:   hash,
		BirthDate:  birthDate,
		City:       req.City,
		PostalCode: req.PostalCode,
		Role:       models.RoleUser,
	}

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a token carrying the current
// role/permission snapshot. Later role changes do not reach tokens already
// in flight; they expire on their own schedule.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return "", nil, ErrMissingCredentials
	}

	user, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		return "", nil, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	return signed, user, nil
}
