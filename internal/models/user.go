package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	PermissionRead   = "read"
	PermissionDelete = "delete"
)

// User is the persisted account entity. The password hash is never
// serialized or logged.
type User struct {
	ID          uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName   string                      `gorm:"size:100;not null" json:"firstName"`
	LastName    string                      `gorm:"size:100;not null" json:"lastName"`
	Email       string                      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password    string                      `gorm:"not null" json:"-"`
	BirthDate   time.Time                   `gorm:"not null" json:"birthDate"`
	City        string                      `gorm:"size:100" json:"city"`
	PostalCode  string                      `gorm:"size:10" json:"postalCode"`
	Role        string                      `gorm:"size:20;default:'user'" json:"role"`
	Permissions datatypes.JSONSlice[string] `json:"permissions"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// NormalizeEmail lowercases and trims an email so storage and lookups agree
// on one canonical form. Uniqueness silently breaks if the two ever diverge.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DerivePermissions re-derives a permission set from the role. Admins always
// hold exactly {read, delete} no matter what was supplied; regular users keep
// their set, defaulting to {read} so it is never empty.
func DerivePermissions(role string, permissions []string) []string {
	if role == RoleAdmin {
		return []string{PermissionRead, PermissionDelete}
	}
	if len(permissions) == 0 {
		return []string{PermissionRead}
	}
	return permissions
}

// Normalize canonicalizes the email and re-derives permissions from the role.
// The store calls this before every persist, not just on creation, so a role
// change always refreshes the permission set.
func (u *User) Normalize() {
	u.Email = NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = RoleUser
	}
	u.Permissions = datatypes.NewJSONSlice(DerivePermissions(u.Role, u.Permissions))
}

// HasPermission reports whether the user's set contains the permission.
func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// FullName is used in human-readable responses.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
