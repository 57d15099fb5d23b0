// internal/domain/wave/entity_test.go
package wave

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/warehouse-backend/internal/pkg/apperr"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "INB-2024-0007", FormatNumber(KindInbound, 2024, 7))
	assert.Equal(t, "OUT-2026-0001", FormatNumber(KindOutbound, 2026, 1))
	assert.Equal(t, "INB-2026-1234", FormatNumber(KindInbound, 2026, 1234))

	// Sequences past 9999 widen instead of wrapping
	assert.Equal(t, "OUT-2026-10001", FormatNumber(KindOutbound, 2026, 10001))
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("inbound")
	require.NoError(t, err)
	assert.Equal(t, KindInbound, kind)

	kind, err = ParseKind("  Outbound ")
	require.NoError(t, err)
	assert.Equal(t, KindOutbound, kind)

	_, err = ParseKind("sideways")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestParseStatus(t *testing.T) {
	for _, value := range []string{"planned", "in_progress", "completed", "cancelled"} {
		status, err := ParseStatus(value)
		require.NoError(t, err)
		assert.Equal(t, Status(value), status)
	}

	_, err := ParseStatus("archived")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPlanned.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestNormalizeCounterparty(t *testing.T) {
	name, err := NormalizeCounterparty("  acme supplies ")
	require.NoError(t, err)
	assert.Equal(t, "ACME SUPPLIES", name)

	_, err = NormalizeCounterparty(" ab ")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	// Exactly four characters after trimming passes
	name, err = NormalizeCounterparty("acme")
	require.NoError(t, err)
	assert.Equal(t, "ACME", name)
}

func TestWaveDerivedViews(t *testing.T) {
	w := &Wave{
		Status: StatusInProgress,
		Items: []WaveItem{
			{ItemID: 1, TotalQuantity: 3},
			{ItemID: 2, TotalQuantity: 4},
		},
	}

	assert.Equal(t, 2, w.TotalItems())
	assert.Equal(t, 7, w.TotalQuantity())
	assert.False(t, w.IsCompleted())

	w.Status = StatusCompleted
	assert.True(t, w.IsCompleted())
}

func TestWaveShortDescription(t *testing.T) {
	w := &Wave{Description: "short note"}
	assert.Equal(t, "short note", w.ShortDescription())

	w.Description = strings.Repeat("x", shortDescriptionLimit)
	assert.Equal(t, w.Description, w.ShortDescription())

	w.Description = strings.Repeat("x", shortDescriptionLimit+10)
	short := w.ShortDescription()
	assert.Len(t, short, shortDescriptionLimit+3)
	assert.True(t, strings.HasSuffix(short, "..."))
}

func TestWaveUploadsDir(t *testing.T) {
	inbound := &Wave{Kind: KindInbound, Number: "INB-2026-0001"}
	assert.Equal(t, "inbounds/INB-2026-0001", inbound.UploadsDir())

	outbound := &Wave{Kind: KindOutbound, Number: "OUT-2026-0002"}
	assert.Equal(t, "outbounds/OUT-2026-0002", outbound.UploadsDir())
}

func TestWaveActualDateStartsUnset(t *testing.T) {
	w := &Wave{PlannedDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	assert.Nil(t, w.ActualDate)
}
