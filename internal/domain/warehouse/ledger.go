// internal/domain/warehouse/ledger.go
package warehouse

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/your-org/warehouse-backend/internal/pkg/apperr"
)

// Ledger mutates place_items rows inside a caller-owned transaction.
// Every method locks the touched row FOR UPDATE so concurrent wave
// transitions over the same (place, item) pair serialize instead of
// losing increments.
type Ledger struct{}

// NewLedger creates a new ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add increments the quantity of item at place, creating the row with
// the given status tag when none exists yet.
func (l *Ledger) Add(tx *gorm.DB, placeID, itemID uint, quantity int, status PlaceItemStatus) error {
	if quantity <= 0 {
		return apperr.Validationf("ledger add quantity must be positive, got %d", quantity)
	}

	// Make sure the row exists before locking it. ON CONFLICT DO NOTHING
	// keeps a concurrent first Add for the same pair from aborting the
	// surrounding transaction on the unique (place, item) index.
	fresh := PlaceItem{PlaceID: placeID, ItemID: itemID, Quantity: 0, Status: status}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh).Error; err != nil {
		return fmt.Errorf("failed to create ledger row: %w", err)
	}

	var row PlaceItem
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("place_id = ? AND item_id = ?", placeID, itemID).
		First(&row).Error; err != nil {
		return fmt.Errorf("failed to lock ledger row: %w", err)
	}

	row.Quantity += quantity
	row.Status = status
	if err := tx.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to update ledger row: %w", err)
	}
	return nil
}

// Remove decrements the quantity of item at place and deletes the row
// once it reaches zero. Removing more than is on hand is a conflict:
// another wave must have drained the same stock concurrently.
func (l *Ledger) Remove(tx *gorm.DB, placeID, itemID uint, quantity int) error {
	if quantity <= 0 {
		return apperr.Validationf("ledger remove quantity must be positive, got %d", quantity)
	}

	var row PlaceItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("place_id = ? AND item_id = ?", placeID, itemID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Conflictf("no stock for item %d at place %d", itemID, placeID)
	}
	if err != nil {
		return fmt.Errorf("failed to lock ledger row: %w", err)
	}

	if row.Quantity < quantity {
		return apperr.Conflictf("insufficient stock for item %d at place %d: have %d, need %d",
			itemID, placeID, row.Quantity, quantity)
	}

	row.Quantity -= quantity
	if row.IsEmpty() {
		if err := tx.Delete(&row).Error; err != nil {
			return fmt.Errorf("failed to delete drained ledger row: %w", err)
		}
		return nil
	}
	if err := tx.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to update ledger row: %w", err)
	}
	return nil
}

// QuantityAt returns the quantity of item currently at place, zero when
// no row exists. Read-only, no lock taken.
func (l *Ledger) QuantityAt(tx *gorm.DB, placeID, itemID uint) (int, error) {
	var row PlaceItem
	err := tx.Where("place_id = ? AND item_id = ?", placeID, itemID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read ledger row: %w", err)
	}
	return row.Quantity, nil
}
