// internal/domain/user/entity_test.go
package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleIsValid(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleDirector, RoleOperator, RoleViewer} {
		assert.True(t, role.IsValid(), string(role))
	}
	assert.False(t, Role("manager").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestRoleCanChangeWaveStatus(t *testing.T) {
	assert.True(t, RoleAdmin.CanChangeWaveStatus())
	assert.True(t, RoleDirector.CanChangeWaveStatus())
	assert.True(t, RoleOperator.CanChangeWaveStatus())
	assert.False(t, RoleViewer.CanChangeWaveStatus())
}

func TestBeforeCreateNormalizesUsername(t *testing.T) {
	u := &User{Username: "  Petrov "}
	require.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, "petrov", u.Username)
}

func TestGetDisplayName(t *testing.T) {
	u := &User{Username: "petrov", FullName: "  "}
	assert.Equal(t, "petrov", u.GetDisplayName())

	u.FullName = "A. Petrov"
	assert.Equal(t, "A. Petrov", u.GetDisplayName())
}
