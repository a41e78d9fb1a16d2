package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mlemaire/user-management-api/internal/dto"
	"github.com/mlemaire/user-management-api/internal/models"
)

// RequirePermission passes only when the identity context holds the given
// permission. A missing identity context is an automatic 401; these gates
// never assume Authenticate already ran. Forbidden responses disclose the
// required vs. actual permission set: the caller already knows their own
// identity, so this is diagnostics, not a leak.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := Identity(c)
		if identity == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.NewError(dto.CodeNoUserInRequest, "Authentication required."))
		}

		if !identity.HasPermission(permission) {
			resp := dto.NewError(dto.CodeInsufficientPerms, permissionDeniedMessage(permission))
			resp.RequiredPermission = permission
			resp.UserPermissions = identity.Permissions
			resp.UserRole = identity.Role
			return c.Status(fiber.StatusForbidden).JSON(resp)
		}

		return c.Next()
	}
}

// RequireAdmin passes only when the identity's role is exactly admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := Identity(c)
		if identity == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.NewError(dto.CodeNoUserInRequest, "Authentication required."))
		}

		if identity.Role != models.RoleAdmin {
			resp := dto.NewError(dto.CodeAdminRoleRequired, "This action is restricted to administrators.")
			resp.RequiredRole = models.RoleAdmin
			resp.UserRole = identity.Role
			return c.Status(fiber.StatusForbidden).JSON(resp)
		}

		return c.Next()
	}
}

// RequireRoleOrPermission passes when either the role matches or the
// permission is held. Logical OR, not AND.
func RequireRoleOrPermission(role, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := Identity(c)
		if identity == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.NewError(dto.CodeNoUserInRequest, "Authentication required."))
		}

		if identity.Role != role && !identity.HasPermission(permission) {
			resp := dto.NewError(dto.CodeInsufficientRoleOrPerm, "You do not have the rights for this action.")
			resp.RequiredRole = role
			resp.RequiredPermission = permission
			resp.UserRole = identity.Role
			resp.UserPermissions = identity.Permissions
			return c.Status(fiber.StatusForbidden).JSON(resp)
		}

		return c.Next()
	}
}

func permissionDeniedMessage(permission string) string {
	switch permission {
	case models.PermissionDelete:
		return "Only administrators can delete users."
	case models.PermissionRead:
		return "You do not have the rights to view users."
	default:
		return "Permission '" + permission + "' is required for this action."
	}
}
