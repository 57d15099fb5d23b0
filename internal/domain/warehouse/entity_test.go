// internal/domain/warehouse/entity_test.go
package warehouse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceItemIsEmpty(t *testing.T) {
	assert.True(t, (&PlaceItem{Quantity: 0}).IsEmpty())
	assert.True(t, (&PlaceItem{Quantity: -1}).IsEmpty())
	assert.False(t, (&PlaceItem{Quantity: 1}).IsEmpty())
}

func TestPlaceItemItemDescription(t *testing.T) {
	row := &PlaceItem{Item: Item{Description: "Shaft seal"}}
	assert.Equal(t, "Shaft seal", row.ItemDescription())
}

func TestItemShortDescription(t *testing.T) {
	short := &Item{Description: "Bearing"}
	assert.Equal(t, "Bearing", short.ShortDescription())

	long := &Item{Description: strings.Repeat("x", 80)}
	assert.Equal(t, strings.Repeat("x", 48)+"...", long.ShortDescription())
	assert.Len(t, long.ShortDescription(), 51)
}

func TestValidateItemAttributes(t *testing.T) {
	assert.NoError(t, validateItemAttributes("Shaft seal", 1200))
	assert.NoError(t, validateItemAttributes("", 0))
	assert.NoError(t, validateItemAttributes("Dense cargo", MaxWeightGrams))

	assert.Error(t, validateItemAttributes("", -1))
	assert.Error(t, validateItemAttributes("", MaxWeightGrams+1))
	assert.Error(t, validateItemAttributes(strings.Repeat("x", MaxDescriptionLen+1), 0))
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "place_items", PlaceItem{}.TableName())
}
