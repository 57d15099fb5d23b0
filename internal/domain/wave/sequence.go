// internal/domain/wave/sequence.go
package wave

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// nextNumber draws the next wave number for (kind, year) inside the
// caller's transaction. The sequence row is locked FOR UPDATE, so a
// racing creation for the same pair blocks here until this transaction
// commits or rolls back; a rollback returns the number to the pool
// only in the sense that the counter increment is undone with it.
func nextNumber(tx *gorm.DB, kind Kind, year int) (string, error) {
	// Make sure the counter row exists. ON CONFLICT DO NOTHING keeps a
	// concurrent first creation for the same (kind, year) from aborting
	// the surrounding transaction on the unique index.
	fresh := WaveSequence{Kind: kind, Year: year, Counter: 0}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh).Error; err != nil {
		return "", fmt.Errorf("failed to initialize wave sequence: %w", err)
	}

	var seq WaveSequence
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("kind = ? AND year = ?", kind, year).
		First(&seq).Error; err != nil {
		return "", fmt.Errorf("failed to lock wave sequence: %w", err)
	}

	seq.Counter++
	if err := tx.Save(&seq).Error; err != nil {
		return "", fmt.Errorf("failed to advance wave sequence: %w", err)
	}
	return FormatNumber(kind, year, seq.Counter), nil
}
