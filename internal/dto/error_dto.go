package dto

import "time"

// Machine-readable error codes. Authentication failures all surface the same
// unauthorized status; the code is what distinguishes them for diagnostics.
const (
	CodeMissingToken           = "MISSING_TOKEN"
	CodeInvalidToken           = "INVALID_TOKEN"
	CodeTokenExpired           = "TOKEN_EXPIRED"
	CodeTokenNotActive         = "TOKEN_NOT_ACTIVE"
	CodeMissingJWTSecret       = "MISSING_JWT_SECRET"
	CodeNoUserInRequest        = "NO_USER_IN_REQUEST"
	CodeInsufficientPerms      = "INSUFFICIENT_PERMISSIONS"
	CodeAdminRoleRequired      = "ADMIN_ROLE_REQUIRED"
	CodeInsufficientRoleOrPerm = "INSUFFICIENT_ROLE_OR_PERMISSION"
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeMissingCredentials     = "MISSING_CREDENTIALS"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeEmailTaken             = "EMAIL_TAKEN"
	CodeInvalidUserID          = "INVALID_USER_ID"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeSelfDeleteForbidden    = "SELF_DELETE_FORBIDDEN"
	CodeInternalError          = "INTERNAL_ERROR"
)

// ErrorResponse is the uniform error body. Authorization failures carry the
// required-vs-actual context; validation failures carry a field-keyed detail
// map.
type ErrorResponse struct {
	Message            string            `json:"message"`
	Code               string            `json:"error,omitempty"`
	Timestamp          string            `json:"timestamp"`
	RequiredPermission string            `json:"required_permission,omitempty"`
	RequiredRole       string            `json:"required_role,omitempty"`
	UserPermissions    []string          `json:"user_permissions,omitempty"`
	UserRole           string            `json:"user_role,omitempty"`
	Details            map[string]string `json:"details,omitempty"`
}

// NewError builds an ErrorResponse stamped with the current time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Message:   message,
		Code:      code,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
