package middleware_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/mlemaire/user-management-api/internal/dto"
	"github.com/mlemaire/user-management-api/internal/middleware"
	"github.com/mlemaire/user-management-api/internal/models"
	"github.com/mlemaire/user-management-api/internal/token"
)

func newGatedApp(tokens *token.Manager, gate fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/gated", middleware.Authenticate(tokens), gate, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestRequirePermission_Granted(t *testing.T) {
	tokens := token.NewManager(testSecret, time.Hour, "api", "client")
	app := newGatedApp(tokens, middleware.RequirePermission(models.PermissionRead))

	signed := issueToken(t, tokens, models.RoleUser, []string{models.PermissionRead})
	resp, _ := doRequest(t, app, "GET", "/gated", "Bearer "+signed)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequirePermission_DeniedListsRequiredAndActual(t *testing.T) {
	tokens := token.NewManager(testSecret, time.Hour, "api", "client")
	app := newGatedApp(tokens, middleware.RequirePermission(models.PermissionDelete))

	signed := issueToken(t, tokens, models.RoleUser, []string{models.PermissionRead})
	resp, errResp := doRequest(t, app, "GET", "/gated", "Bearer "+signed)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, dto.CodeInsufficientPerms, errResp.Code)
	assert.Equal(t, models.PermissionDelete, errResp.RequiredPermission)
	assert.Equal(t, []string{models.PermissionRead}, errResp.UserPermissions)
	assert.Equal(t, models.RoleUser, errResp.UserRole)
}

func TestRequirePermission_WithoutAuthentication(t *testing.T) {
	// The gate must not assume Authenticate ran; a bare chain still fails
	// closed with an unauthenticated status.
	app := fiber.New()
	app.Get("/gated", middleware.RequirePermission(models.PermissionRead), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	resp, errResp := doRequest(t, app, "GET", "/gated", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, dto.CodeNoUserInRequest, errResp.Code)
}

func TestRequireAdmin(t *testing.T) {
	tokens := token.NewManager(testSecret, time.Hour, "api", "client")
	app := newGatedApp(tokens, middleware.RequireAdmin())

	adminToken := issueToken(t, tokens, models.RoleAdmin, []string{models.PermissionRead, models.PermissionDelete})
	resp, _ := doRequest(t, app, "GET", "/gated", "Bearer "+adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	userToken := issueToken(t, tokens, models.RoleUser, []string{models.PermissionRead})
	resp, errResp := doRequest(t, app, "GET", "/gated", "Bearer "+userToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, dto.CodeAdminRoleRequired, errResp.Code)
	assert.Equal(t, models.RoleAdmin, errResp.RequiredRole)
	assert.Equal(t, models.RoleUser, errResp.UserRole)
}

func TestRequireRoleOrPermission_EitherSideSuffices(t *testing.T) {
	tokens := token.NewManager(testSecret, time.Hour, "api", "client")
	app := newGatedApp(tokens, middleware.RequireRoleOrPermission(models.RoleAdmin, models.PermissionDelete))

	// Role matches, permission absent.
	roleOnly := issueToken(t, tokens, models.RoleAdmin, []string{models.PermissionRead})
	resp, _ := doRequest(t, app, "GET", "/gated", "Bearer "+roleOnly)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Permission matches, role does not.
	permOnly := issueToken(t, tokens, models.RoleUser, []string{models.PermissionDelete})
	resp, _ = doRequest(t, app, "GET", "/gated", "Bearer "+permOnly)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Neither.
	neither := issueToken(t, tokens, models.RoleUser, []string{models.PermissionRead})
	resp, errResp := doRequest(t, app, "GET", "/gated", "Bearer "+neither)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, dto.CodeInsufficientRoleOrPerm, errResp.Code)
	assert.Equal(t, models.RoleAdmin, errResp.RequiredRole)
	assert.Equal(t, models.PermissionDelete, errResp.RequiredPermission)
}
