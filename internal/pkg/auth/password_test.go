// internal/pkg/auth/password_test.go
package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/warehouse-backend/internal/config"
)

func testPasswordManager() *PasswordManager {
	cfg := &config.Config{}
	cfg.Security.BcryptCost = 4 // minimum cost keeps the test fast
	return NewPasswordManager(cfg)
}

func TestHashAndVerifyPassword(t *testing.T) {
	pm := testPasswordManager()

	hash, err := pm.HashPassword("Operator1")
	require.NoError(t, err)
	assert.NotEqual(t, "Operator1", hash)

	assert.NoError(t, pm.VerifyPassword("Operator1", hash))
	assert.Error(t, pm.VerifyPassword("operator1", hash))
}

func TestValidatePassword(t *testing.T) {
	pm := testPasswordManager()

	assert.NoError(t, pm.ValidatePassword("Operator1"))
	// Three identical characters in a row is still acceptable.
	assert.NoError(t, pm.ValidatePassword("Opaaa1234"))

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Op1"},
		{"too long", "A1" + strings.Repeat("a", 127)},
		{"no uppercase", "operator1"},
		{"no lowercase", "OPERATOR1"},
		{"no number", "Operatorx"},
		{"repeating run", "Opaaaa123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, pm.ValidatePassword(tc.password))
		})
	}
}
