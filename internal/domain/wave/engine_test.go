// internal/domain/wave/engine_test.go
package wave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/your-org/warehouse-backend/internal/domain/warehouse"
	"github.com/your-org/warehouse-backend/internal/pkg/apperr"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) Add(tx *gorm.DB, placeID, itemID uint, quantity int, status warehouse.PlaceItemStatus) error {
	args := m.Called(tx, placeID, itemID, quantity, status)
	return args.Error(0)
}

func (m *mockLedger) Remove(tx *gorm.DB, placeID, itemID uint, quantity int) error {
	args := m.Called(tx, placeID, itemID, quantity)
	return args.Error(0)
}

func newTestEngine(ledger Ledger) *Engine {
	places := warehouse.ReservedPlaces{
		Staging: warehouse.Place{ID: 1, Name: "INBOUND"},
		Storage: warehouse.Place{ID: 2, Name: "NEW"},
	}
	return NewEngine(nil, ledger, places)
}

func testWave(status Status) *Wave {
	return &Wave{
		ID:     10,
		Kind:   KindInbound,
		Status: status,
		Items: []WaveItem{
			{ItemID: 100, TotalQuantity: 3},
			{ItemID: 101, TotalQuantity: 4},
		},
	}
}

func TestIsValidTransition(t *testing.T) {
	valid := []struct{ from, to Status }{
		{StatusPlanned, StatusInProgress},
		{StatusPlanned, StatusCancelled},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}
	for _, tc := range valid {
		assert.True(t, isValidTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	invalid := []struct{ from, to Status }{
		{StatusPlanned, StatusCompleted},
		{StatusPlanned, StatusPlanned},
		{StatusInProgress, StatusPlanned},
		{StatusCompleted, StatusCancelled},
		{StatusCompleted, StatusInProgress},
		{StatusCancelled, StatusPlanned},
		{StatusCancelled, StatusInProgress},
	}
	for _, tc := range invalid {
		assert.False(t, isValidTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestApplyTransitionStartStagesLines(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("Add", mock.Anything, uint(1), uint(100), 3, warehouse.PlaceItemStatusDock).Return(nil)
	ledger.On("Add", mock.Anything, uint(1), uint(101), 4, warehouse.PlaceItemStatusDock).Return(nil)

	engine := newTestEngine(ledger)
	err := engine.applyTransition(nil, testWave(StatusPlanned), StatusInProgress)
	require.NoError(t, err)

	ledger.AssertExpectations(t)
	ledger.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyTransitionCancelPlannedTouchesNothing(t *testing.T) {
	ledger := new(mockLedger)
	engine := newTestEngine(ledger)

	err := engine.applyTransition(nil, testWave(StatusPlanned), StatusCancelled)
	require.NoError(t, err)

	ledger.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	ledger.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyTransitionCompleteMovesStagedToStorage(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("Remove", mock.Anything, uint(1), uint(100), 3).Return(nil)
	ledger.On("Add", mock.Anything, uint(2), uint(100), 3, warehouse.PlaceItemStatusNew).Return(nil)
	ledger.On("Remove", mock.Anything, uint(1), uint(101), 4).Return(nil)
	ledger.On("Add", mock.Anything, uint(2), uint(101), 4, warehouse.PlaceItemStatusNew).Return(nil)

	engine := newTestEngine(ledger)
	err := engine.applyTransition(nil, testWave(StatusInProgress), StatusCompleted)
	require.NoError(t, err)

	ledger.AssertExpectations(t)
}

func TestApplyTransitionCancelInProgressReleasesOwnLines(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("Remove", mock.Anything, uint(1), uint(100), 3).Return(nil)
	ledger.On("Remove", mock.Anything, uint(1), uint(101), 4).Return(nil)

	engine := newTestEngine(ledger)
	err := engine.applyTransition(nil, testWave(StatusInProgress), StatusCancelled)
	require.NoError(t, err)

	// Release never adds anything back anywhere
	ledger.AssertExpectations(t)
	ledger.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyTransitionRejectsInvalidPair(t *testing.T) {
	ledger := new(mockLedger)
	engine := newTestEngine(ledger)

	err := engine.applyTransition(nil, testWave(StatusCompleted), StatusCancelled)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	ledger.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	ledger.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyTransitionPropagatesLedgerError(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("Remove", mock.Anything, uint(1), uint(100), 3).
		Return(apperr.Conflictf("insufficient quantity"))

	engine := newTestEngine(ledger)
	err := engine.applyTransition(nil, testWave(StatusInProgress), StatusCompleted)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// The failure stops the walk before the second line
	ledger.AssertNumberOfCalls(t, "Remove", 1)
	ledger.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
