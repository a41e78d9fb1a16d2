package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mlemaire/user-management-api/internal/dto"
	"github.com/mlemaire/user-management-api/internal/token"
)

const identityKey = "identity"

// Authenticate extracts the bearer token from the Authorization header,
// verifies it and attaches the decoded claims to the request. Every
// verification failure is a 401 with a distinct machine code; a missing
// signing secret is a 500, since that is a server fault, not the caller's.
func Authenticate(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.NewError(dto.CodeMissingToken, "You must be logged in to access this resource."))
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			if errors.Is(err, token.ErrMissingSecret) {
				slog.Error("jwt secret is not configured", "path", c.Path())
				return c.Status(fiber.StatusInternalServerError).JSON(
					dto.NewError(dto.CodeMissingJWTSecret, "Server configuration error."))
			}

			code := dto.CodeInvalidToken
			message := "Invalid token, please log in again."
			var verr *token.VerifyError
			if errors.As(err, &verr) {
				switch verr.Kind {
				case token.KindExpired:
					code = dto.CodeTokenExpired
					message = "Your session has expired, please log in again."
				case token.KindNotYetValid:
					code = dto.CodeTokenNotActive
					message = "Token is not active yet."
				}
			}
			slog.Debug("token rejected", "reason", err, "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError(code, message))
		}

		c.Locals(identityKey, claims)
		return c.Next()
	}
}

// Identity returns the verified claims attached by Authenticate, or nil if
// the request never passed authentication.
func Identity(c *fiber.Ctx) *token.Claims {
	claims, _ := c.Locals(identityKey).(*token.Claims)
	return claims
}

// bearerToken returns the token segment of an "Authorization: Bearer <token>"
// header. A header without a token segment is treated the same as no header.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
