package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mlemaire/user-management-api/internal/dto"
	"github.com/mlemaire/user-management-api/internal/middleware"
	"github.com/mlemaire/user-management-api/internal/services"
	"github.com/mlemaire/user-management-api/internal/token"
	"github.com/mlemaire/user-management-api/internal/validation"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.NewError(dto.CodeValidationFailed, "Invalid request body."))
	}

	user, err := h.authService.Register(c.Context(), &req)
	if err != nil {
		if details := validation.FieldErrors(err); details != nil {
			resp := dto.NewError(dto.CodeValidationFailed, "Some fields are invalid.")
			resp.Details = details
			return c.Status(fiber.StatusBadRequest).JSON(resp)
		}
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(
				dto.NewError(dto.CodeEmailTaken, "This email address is already in use."))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.CodeInternalError, "An error occurred while creating the account."))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Message: "Your account has been created successfully!",
		UserID:  user.ID,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.NewError(dto.CodeMissingCredentials, "Invalid request body."))
	}

	signed, user, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingCredentials):
			return c.Status(fiber.StatusBadRequest).JSON(
				dto.NewError(dto.CodeMissingCredentials, "Email and password are required."))
		case errors.Is(err, services.ErrInvalidCredentials):
			// Identical body for unknown email and wrong password.
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.NewError(dto.CodeInvalidCredentials, "Incorrect email or password."))
		case errors.Is(err, token.ErrMissingSecret):
			return c.Status(fiber.StatusInternalServerError).JSON(
				dto.NewError(dto.CodeMissingJWTSecret, "Server configuration error."))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(
				dto.NewError(dto.CodeInternalError, "An error occurred while logging in."))
		}
	}

	return c.JSON(dto.LoginResponse{
		Message: "Login successful!",
		Token:   signed,
		User: dto.IdentityInfo{
			ID:          user.ID.String(),
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			Email:       user.Email,
			Role:        user.Role,
			Permissions: user.Permissions,
		},
	})
}

// Logout acknowledges a client-side token discard. Tokens are stateless and
// remain technically valid until expiry; there is no server-side denylist.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out successfully. Discard your token."})
}

// Me echoes the verified identity context back to the caller.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	if identity == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(
			dto.NewError(dto.CodeNoUserInRequest, "Authentication required."))
	}

	return c.JSON(dto.MeResponse{
		Message: "Token is valid.",
		User: dto.IdentityInfo{
			ID:          identity.UserID,
			FirstName:   identity.FirstName,
			LastName:    identity.LastName,
			Email:       identity.Email,
			Role:        identity.Role,
			Permissions: identity.Permissions,
		},
		TokenInfo: dto.TokenInfo{
			IssuedAt:  formatClaimTime(identity.IssuedAt),
			ExpiresAt: formatClaimTime(identity.ExpiresAt),
		},
	})
}

// TokenInfo reports how much lifetime the presented token has left.
func (h *AuthHandler) TokenInfo(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	if identity == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(
			dto.NewError(dto.CodeNoUserInRequest, "Authentication required."))
	}

	now := time.Now()
	var timeLeft int64
	if identity.ExpiresAt != nil {
		timeLeft = int64(identity.ExpiresAt.Time.Sub(now).Seconds())
	}
	return c.JSON(dto.TokenDiagnostics{
		CurrentTime:     now.UTC().Format(time.RFC3339),
		TokenIssuedAt:   formatClaimTime(identity.IssuedAt),
		TokenExpiresAt:  formatClaimTime(identity.ExpiresAt),
		TimeLeftSeconds: timeLeft,
		User:            identity.Email,
		Role:            identity.Role,
	})
}

func formatClaimTime(nd *jwt.NumericDate) string {
	if nd == nil {
		return ""
	}
	return nd.Time.UTC().Format(time.RFC3339)
}
