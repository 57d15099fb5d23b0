// internal/domain/wave/entity.go
package wave

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/warehouse-backend/internal/domain/warehouse"
	"github.com/your-org/warehouse-backend/internal/pkg/apperr"
)

// Kind discriminates inbound receipts from outbound shipments
type Kind string

const (
	KindInbound  Kind = "inbound"
	KindOutbound Kind = "outbound"
)

// NumberPrefix returns the tag used in wave numbers for this kind
func (k Kind) NumberPrefix() string {
	if k == KindOutbound {
		return "OUT"
	}
	return "INB"
}

// IsValid reports whether the kind is one of the known variants
func (k Kind) IsValid() bool {
	return k == KindInbound || k == KindOutbound
}

// ParseKind converts a string into a Kind
func ParseKind(value string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(value)))
	if !k.IsValid() {
		return "", apperr.Validationf("unknown wave kind '%s'", value)
	}
	return k, nil
}

// Status represents the lifecycle status of a wave
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ParseStatus converts a string into a Status, rejecting anything
// outside the four enum members before transition logic runs.
func ParseStatus(value string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusPlanned:
		return StatusPlanned, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCancelled:
		return StatusCancelled, nil
	}
	return "", apperr.Validationf("unknown wave status '%s'", value)
}

// Wave represents one grouped inventory movement, inbound or outbound.
// Kind-specific behavior hangs off the Kind discriminator; Counterparty
// is the supplier for inbound waves and the recipient for outbound.
type Wave struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Kind         Kind           `gorm:"not null;size:20;index" json:"kind"`
	Number       string         `gorm:"uniqueIndex;not null;size:50" json:"number"`
	StockID      uint           `gorm:"not null;index" json:"stock_id"`
	Status       Status         `gorm:"not null;default:'planned';size:20" json:"status"`
	Counterparty string         `gorm:"size:200" json:"counterparty"`
	PlannedDate  time.Time      `gorm:"not null" json:"planned_date"`
	ActualDate   *time.Time     `json:"actual_date,omitempty"`
	Description  string         `gorm:"type:text" json:"description"`
	CreatedBy    uint           `gorm:"index" json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Stock         warehouse.Stock     `gorm:"foreignKey:StockID" json:"stock,omitempty"`
	Items         []WaveItem          `gorm:"foreignKey:WaveID" json:"items,omitempty"`
	StatusHistory []WaveStatusHistory `gorm:"foreignKey:WaveID" json:"status_history,omitempty"`
}

// TableName overrides the table name
func (Wave) TableName() string {
	return "waves"
}

// WaveItem is one line item: an item and its total quantity within a
// wave. Line items are created in bulk at wave creation and never
// change afterwards; cancellation releases staged stock by walking them.
type WaveItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	WaveID        uint      `gorm:"not null;index" json:"wave_id"`
	ItemID        uint      `gorm:"not null;index" json:"item_id"`
	TotalQuantity int       `gorm:"not null" json:"total_quantity"`
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	Item warehouse.Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName overrides the table name
func (WaveItem) TableName() string {
	return "wave_items"
}

// WaveSequence is the per-(kind, year) counter behind wave numbers. The
// row is locked FOR UPDATE inside the wave-creation transaction so two
// concurrent creations in the same year cannot draw the same number.
type WaveSequence struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	Kind    Kind `gorm:"not null;size:20;uniqueIndex:idx_wave_sequence" json:"kind"`
	Year    int  `gorm:"not null;uniqueIndex:idx_wave_sequence" json:"year"`
	Counter int  `gorm:"not null;default:0" json:"counter"`
}

// TableName overrides the table name
func (WaveSequence) TableName() string {
	return "wave_sequences"
}

// WaveStatusHistory records every executed transition for audit
type WaveStatusHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WaveID     uint      `gorm:"not null;index" json:"wave_id"`
	FromStatus Status    `gorm:"not null;size:20" json:"from_status"`
	ToStatus   Status    `gorm:"not null;size:20" json:"to_status"`
	Comment    string    `gorm:"type:text" json:"comment"`
	ChangedBy  uint      `json:"changed_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides the table name
func (WaveStatusHistory) TableName() string {
	return "wave_status_history"
}

const (
	shortDescriptionLimit = 48

	maxWaveDescriptionLen = 500
)

// FormatNumber builds a wave number like INB-2024-0007
func FormatNumber(kind Kind, year, sequence int) string {
	return fmt.Sprintf("%s-%d-%04d", kind.NumberPrefix(), year, sequence)
}

// NormalizeCounterparty trims and upper-cases a supplier or recipient
// name. Names shorter than 4 characters after trimming are rejected.
func NormalizeCounterparty(value string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if len(normalized) < 4 {
		return "", apperr.Validationf("counterparty name must be at least 4 characters")
	}
	return normalized, nil
}

// Derived views. Pure functions of current state, recomputed on demand.

// TotalItems returns the number of distinct line items
func (w *Wave) TotalItems() int {
	return len(w.Items)
}

// TotalQuantity returns the aggregate quantity across line items
func (w *Wave) TotalQuantity() int {
	total := 0
	for _, item := range w.Items {
		total += item.TotalQuantity
	}
	return total
}

// IsCompleted reports whether the wave reached completed
func (w *Wave) IsCompleted() bool {
	return w.Status == StatusCompleted
}

// ShortDescription returns the description truncated for list views
func (w *Wave) ShortDescription() string {
	if len(w.Description) <= shortDescriptionLimit {
		return w.Description
	}
	return w.Description[:shortDescriptionLimit] + "..."
}

// UploadsDir returns the folder name wave documents are stored under
func (w *Wave) UploadsDir() string {
	if w.Kind == KindOutbound {
		return "outbounds/" + w.Number
	}
	return "inbounds/" + w.Number
}
