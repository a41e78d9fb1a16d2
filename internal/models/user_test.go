package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.com  "))
	assert.Equal(t, "jean@example.com", NormalizeEmail("Jean@Example.COM"))
}

func TestDerivePermissions_AdminAlwaysFullSet(t *testing.T) {
	cases := [][]string{nil, {}, {PermissionRead}, {"bogus"}}
	for _, supplied := range cases {
		assert.Equal(t, []string{PermissionRead, PermissionDelete}, DerivePermissions(RoleAdmin, supplied))
	}
}

func TestDerivePermissions_UserDefaultsToRead(t *testing.T) {
	assert.Equal(t, []string{PermissionRead}, DerivePermissions(RoleUser, nil))
	assert.Equal(t, []string{PermissionRead}, DerivePermissions(RoleUser, []string{}))
}

func TestDerivePermissions_UserKeepsSuppliedSet(t *testing.T) {
	supplied := []string{PermissionRead, PermissionDelete}
	assert.Equal(t, supplied, DerivePermissions(RoleUser, supplied))
}

func TestNormalize_RoleChangeRederivesPermissions(t *testing.T) {
	u := &User{Email: "X@Y.com", Role: RoleUser, Permissions: []string{PermissionRead}}
	u.Normalize()
	assert.Equal(t, "x@y.com", u.Email)
	assert.Equal(t, []string{PermissionRead}, []string(u.Permissions))

	u.Role = RoleAdmin
	u.Normalize()
	assert.Equal(t, []string{PermissionRead, PermissionDelete}, []string(u.Permissions))

	u.Role = RoleUser
	u.Permissions = nil
	u.Normalize()
	assert.Equal(t, []string{PermissionRead}, []string(u.Permissions))
}

func TestNormalize_EmptyRoleDefaultsToUser(t *testing.T) {
	u := &User{Email: "a@b.com"}
	u.Normalize()
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, []string{PermissionRead}, []string(u.Permissions))
}

func TestHasPermission(t *testing.T) {
	u := &User{Permissions: []string{PermissionRead}}
	assert.True(t, u.HasPermission(PermissionRead))
	assert.False(t, u.HasPermission(PermissionDelete))
}
