// internal/pkg/apperr/errors_test.go
package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappersCarrySentinel(t *testing.T) {
	err := Validationf("row %d: quantity must be positive", 3)
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "row 3")

	assert.True(t, IsNotFound(NotFoundf("wave %d", 7)))
	assert.True(t, IsResource(Resourcef("file too large")))
	assert.True(t, IsConflict(Conflictf("insufficient quantity")))
}

func TestPredicatesSurviveFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("import failed: %w", Validationf("missing columns: quantity"))
	assert.True(t, IsValidation(err))
}

func TestPredicatesRejectForeignErrors(t *testing.T) {
	err := errors.New("plain failure")
	assert.False(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsResource(err))
	assert.False(t, IsConflict(err))

	assert.False(t, IsValidation(nil))
}
