// internal/domain/warehouse/entity.go
package warehouse

import (
	"time"

	"gorm.io/gorm"
)

// PlaceItemStatus represents the status tag carried by a ledger row
type PlaceItemStatus string

const (
	PlaceItemStatusOK      PlaceItemStatus = "ok"      // Counted and confirmed
	PlaceItemStatusBlocked PlaceItemStatus = "blocked" // Quarantined, not pickable
	PlaceItemStatusAbsent  PlaceItemStatus = "absent"  // Expected but not found
	PlaceItemStatusNew     PlaceItemStatus = "new"     // Freshly put away
	PlaceItemStatusDock    PlaceItemStatus = "dock"    // Sitting at the intake buffer
)

// Stock represents a warehouse building
type Stock struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Address   string         `gorm:"type:text" json:"address"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Zones []Zone `gorm:"foreignKey:StockID" json:"zones,omitempty"`
}

// Zone represents a named area inside a stock
type Zone struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	StockID   uint           `gorm:"not null;index" json:"stock_id"`
	Name      string         `gorm:"not null;size:100" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Stock  Stock   `gorm:"foreignKey:StockID" json:"stock,omitempty"`
	Places []Place `gorm:"foreignKey:ZoneID" json:"places,omitempty"`
}

// Place represents an addressable location goods can sit at. Besides
// regular rack addresses the catalog carries two reserved places, the
// intake buffer and the putaway target, referenced by name from
// configuration.
type Place struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ZoneID    uint           `gorm:"not null;index" json:"zone_id"`
	Name      string         `gorm:"uniqueIndex;not null;size:100" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Zone       Zone        `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	PlaceItems []PlaceItem `gorm:"foreignKey:PlaceID" json:"place_items,omitempty"`
}

// Bounds enforced on catalog items wherever they are created
const (
	MaxWeightGrams    = 100_000_000
	MaxDescriptionLen = 500
)

const shortDescriptionLimit = 48

// Item represents a catalog entry identified by its part number
type Item struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PartNumber  string         `gorm:"uniqueIndex;not null;size:100" json:"part_number"`
	Description string         `gorm:"type:text" json:"description"`
	WeightGrams int            `gorm:"default:0" json:"weight_grams"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// ShortDescription returns the description truncated for list views
func (i *Item) ShortDescription() string {
	if len(i.Description) <= shortDescriptionLimit {
		return i.Description
	}
	return i.Description[:shortDescriptionLimit] + "..."
}

// PlaceItem is one ledger row: the quantity of one item present at one
// place. At most one row exists per (place, item) pair and quantity
// never goes negative. Rows are only mutated inside the transaction of
// a wave status transition.
type PlaceItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	PlaceID   uint            `gorm:"not null;uniqueIndex:idx_place_item" json:"place_id"`
	ItemID    uint            `gorm:"not null;uniqueIndex:idx_place_item" json:"item_id"`
	Quantity  int             `gorm:"not null;default:0" json:"quantity"`
	Status    PlaceItemStatus `gorm:"not null;default:'ok';size:20" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Place Place `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
	Item  Item  `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName overrides the table name for ledger rows
func (PlaceItem) TableName() string {
	return "place_items"
}

// IsEmpty reports whether the row holds no stock and can be removed
func (pi *PlaceItem) IsEmpty() bool {
	return pi.Quantity <= 0
}

// ItemDescription returns the item description from a ledger row
func (pi *PlaceItem) ItemDescription() string {
	return pi.Item.Description
}
