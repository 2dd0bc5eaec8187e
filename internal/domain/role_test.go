package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
)

func TestParseRole_AcceptsKnownRoles(t *testing.T) {
	for _, name := range []string{"USER", "MANAGER", "ADMIN", "DEVELOPER"} {
		role, err := domain.ParseRole(name)
		require.NoError(t, err, "role %s must parse", name)
		assert.Equal(t, name, string(role))
		assert.True(t, role.Valid())
	}
}

func TestParseRole_RejectsUnknownRole(t *testing.T) {
	for _, name := range []string{"", "user", "ROOT", "SUPERADMIN", "Admin"} {
		_, err := domain.ParseRole(name)
		assert.Error(t, err, "role %q must not parse", name)
	}
}

// Permission matrix: USER can do neither, MANAGER manages data but cannot read
// logs, ADMIN and DEVELOPER can do both.
func TestRolePermissions_Matrix(t *testing.T) {
	cases := []struct {
		role          domain.Role
		canManageData bool
		canViewLogs   bool
	}{
		{domain.RoleUser, false, false},
		{domain.RoleManager, true, false},
		{domain.RoleAdmin, true, true},
		{domain.RoleDeveloper, true, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.canManageData, tc.role.CanManageData(), "%s CanManageData", tc.role)
		assert.Equal(t, tc.canViewLogs, tc.role.CanViewLogs(), "%s CanViewLogs", tc.role)
	}
}

// An unknown role never gains permissions, whatever it is compared against.
func TestHasPermission_FailsClosedForUnknownRole(t *testing.T) {
	bogus := domain.Role("SUPERUSER")
	assert.False(t, bogus.CanManageData())
	assert.False(t, bogus.CanViewLogs())
	assert.False(t, bogus.HasPermission(domain.RoleUser))
}
