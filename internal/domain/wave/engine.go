// internal/domain/wave/engine.go
package wave

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/your-org/warehouse-backend/internal/domain/warehouse"
	"github.com/your-org/warehouse-backend/internal/pkg/apperr"
)

// Ledger is the slice of warehouse ledger behavior the engine mutates
// during a transition. Implemented by warehouse.Ledger.
type Ledger interface {
	Add(tx *gorm.DB, placeID, itemID uint, quantity int, status warehouse.PlaceItemStatus) error
	Remove(tx *gorm.DB, placeID, itemID uint, quantity int) error
}

// Engine validates and executes wave status transitions. Each executed
// transition and its ledger side effects commit as one transaction, so
// a wave is never half-transitioned. The staging and storage places are
// injected at startup after being validated to exist.
type Engine struct {
	db     *gorm.DB
	ledger Ledger
	places warehouse.ReservedPlaces
}

// NewEngine creates a new status transition engine
func NewEngine(db *gorm.DB, ledger Ledger, places warehouse.ReservedPlaces) *Engine {
	return &Engine{
		db:     db,
		ledger: ledger,
		places: places,
	}
}

// allowedTransitions maps each status to the statuses it may move to.
// Completed and cancelled are terminal.
var allowedTransitions = map[Status][]Status{
	StatusPlanned: {
		StatusInProgress,
		StatusCancelled,
	},
	StatusInProgress: {
		StatusCompleted,
		StatusCancelled,
	},
}

// isValidTransition reports whether from may move to to
func isValidTransition(from, to Status) bool {
	for _, status := range allowedTransitions[from] {
		if status == to {
			return true
		}
	}
	return false
}

// ChangeStatus moves the wave to newStatus, applying the ledger side
// effects of the transition. The wave row is locked for the duration so
// concurrent transitions on the same wave serialize; the loser then
// fails validation against the committed status.
func (e *Engine) ChangeStatus(waveID uint, newStatus Status, changedBy uint, comment string) (*Wave, error) {
	tx := e.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var w Wave
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, waveID).Error
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("wave %d", waveID)
		}
		return nil, fmt.Errorf("failed to lock wave: %w", err)
	}

	if !isValidTransition(w.Status, newStatus) {
		tx.Rollback()
		return nil, apperr.Validationf("transition %s -> %s is not allowed", w.Status, newStatus)
	}

	if err := tx.Preload("Item").Where("wave_id = ?", w.ID).
		Order("id").Find(&w.Items).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to load line items: %w", err)
	}

	if err := e.applyTransition(tx, &w, newStatus); err != nil {
		tx.Rollback()
		return nil, err
	}

	history := WaveStatusHistory{
		WaveID:     w.ID,
		FromStatus: w.Status,
		ToStatus:   newStatus,
		Comment:    comment,
		ChangedBy:  changedBy,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record status history: %w", err)
	}

	updates := map[string]interface{}{"status": newStatus}
	// The actual date latches the first time a wave completes and is
	// never overwritten afterwards.
	if newStatus == StatusCompleted && w.ActualDate == nil {
		now := time.Now()
		w.ActualDate = &now
		updates["actual_date"] = &now
	}
	if err := tx.Model(&w).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update wave status: %w", err)
	}
	w.Status = newStatus

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}
	return &w, nil
}

// applyTransition executes the ledger side effect of one transition.
// Release on cancellation is scoped by the wave's own line items, each
// staging row is decremented by exactly the quantity this wave staged,
// so staged stock of another in-progress wave for the same item is
// never touched.
func (e *Engine) applyTransition(tx *gorm.DB, w *Wave, newStatus Status) error {
	switch {
	// planned -> in_progress: stage every line at the intake buffer
	case w.Status == StatusPlanned && newStatus == StatusInProgress:
		for _, line := range w.Items {
			if err := e.ledger.Add(tx, e.places.Staging.ID, line.ItemID, line.TotalQuantity, warehouse.PlaceItemStatusDock); err != nil {
				return err
			}
		}

	// planned -> cancelled: nothing was staged yet
	case w.Status == StatusPlanned && newStatus == StatusCancelled:

	// in_progress -> completed: move staged quantities to storage
	case w.Status == StatusInProgress && newStatus == StatusCompleted:
		for _, line := range w.Items {
			if err := e.ledger.Remove(tx, e.places.Staging.ID, line.ItemID, line.TotalQuantity); err != nil {
				return err
			}
			if err := e.ledger.Add(tx, e.places.Storage.ID, line.ItemID, line.TotalQuantity, warehouse.PlaceItemStatusNew); err != nil {
				return err
			}
		}

	// in_progress -> cancelled: release this wave's staged quantities
	case w.Status == StatusInProgress && newStatus == StatusCancelled:
		for _, line := range w.Items {
			if err := e.ledger.Remove(tx, e.places.Staging.ID, line.ItemID, line.TotalQuantity); err != nil {
				return err
			}
		}

	default:
		return apperr.Validationf("transition %s -> %s is not allowed", w.Status, newStatus)
	}
	return nil
}
