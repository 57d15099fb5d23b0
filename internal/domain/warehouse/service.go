// internal/domain/warehouse/service.go
package warehouse

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/your-org/warehouse-backend/internal/config"
	"github.com/your-org/warehouse-backend/internal/pkg/apperr"
)

// Service handles warehouse catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new warehouse service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateStockRequest represents stock creation data
type CreateStockRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// CreateZoneRequest represents zone creation data
type CreateZoneRequest struct {
	StockID uint   `json:"stock_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

// CreatePlaceRequest represents place creation data
type CreatePlaceRequest struct {
	ZoneID uint   `json:"zone_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// CreateItemRequest represents catalog item creation data
type CreateItemRequest struct {
	PartNumber  string `json:"part_number" binding:"required"`
	Description string `json:"description"`
	WeightGrams int    `json:"weight_grams"`
}

// ReservedPlaces holds the two places every wave transition moves stock
// through, resolved once at startup from configuration.
type ReservedPlaces struct {
	Staging Place
	Storage Place
}

// STOCK / ZONE / PLACE MANAGEMENT

// CreateStock creates a new stock
func (s *Service) CreateStock(req *CreateStockRequest) (*Stock, error) {
	var existing Stock
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, apperr.Validationf("stock '%s' already exists", req.Name)
	}

	stock := &Stock{
		Name:     req.Name,
		Address:  req.Address,
		IsActive: true,
	}
	if err := s.db.Create(stock).Error; err != nil {
		return nil, fmt.Errorf("failed to create stock: %w", err)
	}
	return stock, nil
}

// CreateZone creates a new zone inside a stock
func (s *Service) CreateZone(req *CreateZoneRequest) (*Zone, error) {
	var stock Stock
	if err := s.db.First(&stock, req.StockID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("stock %d", req.StockID)
		}
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}

	zone := &Zone{
		StockID: stock.ID,
		Name:    req.Name,
	}
	if err := s.db.Create(zone).Error; err != nil {
		return nil, fmt.Errorf("failed to create zone: %w", err)
	}
	return zone, nil
}

// CreatePlace creates a new place inside a zone
func (s *Service) CreatePlace(req *CreatePlaceRequest) (*Place, error) {
	var zone Zone
	if err := s.db.First(&zone, req.ZoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("zone %d", req.ZoneID)
		}
		return nil, fmt.Errorf("failed to load zone: %w", err)
	}

	var existing Place
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, apperr.Validationf("place '%s' already exists", req.Name)
	}

	place := &Place{
		ZoneID: zone.ID,
		Name:   req.Name,
	}
	if err := s.db.Create(place).Error; err != nil {
		return nil, fmt.Errorf("failed to create place: %w", err)
	}
	return place, nil
}

// GetPlaceByName returns the place with the given name
func (s *Service) GetPlaceByName(name string) (*Place, error) {
	var place Place
	if err := s.db.Where("name = ?", name).First(&place).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("place '%s'", name)
		}
		return nil, fmt.Errorf("failed to load place: %w", err)
	}
	return &place, nil
}

// ListPlaces returns places with pagination
func (s *Service) ListPlaces(page, limit int) ([]Place, int64, error) {
	var places []Place
	var total int64

	if err := s.db.Model(&Place{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count places: %w", err)
	}

	offset := (page - 1) * limit
	if err := s.db.Preload("Zone").Order("name").
		Offset(offset).Limit(limit).Find(&places).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list places: %w", err)
	}
	return places, total, nil
}

// ResolveReservedPlaces looks up the configured staging and storage
// places. Their absence is a deployment error, so callers run this at
// startup and refuse to serve wave transitions without it.
func (s *Service) ResolveReservedPlaces() (*ReservedPlaces, error) {
	staging, err := s.GetPlaceByName(s.config.Warehouse.StagingPlace)
	if err != nil {
		return nil, apperr.Validationf("staging place '%s' is not configured in the catalog", s.config.Warehouse.StagingPlace)
	}
	storage, err := s.GetPlaceByName(s.config.Warehouse.StoragePlace)
	if err != nil {
		return nil, apperr.Validationf("storage place '%s' is not configured in the catalog", s.config.Warehouse.StoragePlace)
	}
	return &ReservedPlaces{Staging: *staging, Storage: *storage}, nil
}

// ITEM CATALOG

// CreateItem creates a new catalog item
func (s *Service) CreateItem(req *CreateItemRequest) (*Item, error) {
	partNumber := strings.ToUpper(strings.TrimSpace(req.PartNumber))
	if partNumber == "" {
		return nil, apperr.Validationf("part number is required")
	}
	if err := validateItemAttributes(req.Description, req.WeightGrams); err != nil {
		return nil, err
	}

	var existing Item
	if err := s.db.Where("part_number = ?", partNumber).First(&existing).Error; err == nil {
		return nil, apperr.Validationf("item '%s' already exists", partNumber)
	}

	item := &Item{
		PartNumber:  partNumber,
		Description: strings.TrimSpace(req.Description),
		WeightGrams: req.WeightGrams,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

// validateItemAttributes enforces the catalog bounds on descriptions
// and weights shared by direct creation and import-time resolution.
func validateItemAttributes(description string, weightGrams int) error {
	if len(strings.TrimSpace(description)) > MaxDescriptionLen {
		return apperr.Validationf("description must be at most %d characters", MaxDescriptionLen)
	}
	if weightGrams < 0 || weightGrams > MaxWeightGrams {
		return apperr.Validationf("weight must be between 0 and %d grams", MaxWeightGrams)
	}
	return nil
}

// GetItemByPartNumber returns the catalog item with the given part number
func (s *Service) GetItemByPartNumber(partNumber string) (*Item, error) {
	var item Item
	err := s.db.Where("part_number = ?", strings.ToUpper(strings.TrimSpace(partNumber))).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("item '%s'", partNumber)
		}
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	return &item, nil
}

// GetOrCreateItem resolves a part number to a catalog item inside the
// caller's transaction, creating the item when the code is unknown.
// Imports reference codes that may not exist in the catalog yet.
func (s *Service) GetOrCreateItem(tx *gorm.DB, partNumber, description string, weightGrams int) (*Item, error) {
	code := strings.ToUpper(strings.TrimSpace(partNumber))
	if code == "" {
		return nil, apperr.Validationf("part number is required")
	}
	if err := validateItemAttributes(description, weightGrams); err != nil {
		return nil, err
	}

	var item Item
	err := tx.Where("part_number = ?", code).First(&item).Error
	if err == nil {
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up item '%s': %w", code, err)
	}

	item = Item{
		PartNumber:  code,
		Description: strings.TrimSpace(description),
		WeightGrams: weightGrams,
	}
	if err := tx.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create item '%s': %w", code, err)
	}
	return &item, nil
}

// ListItems returns catalog items with pagination and optional search
func (s *Service) ListItems(page, limit int, search string) ([]Item, int64, error) {
	var items []Item
	var total int64

	query := s.db.Model(&Item{})
	if search != "" {
		pattern := "%" + strings.ToUpper(strings.TrimSpace(search)) + "%"
		query = query.Where("part_number LIKE ? OR UPPER(description) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	offset := (page - 1) * limit
	if err := query.Order("part_number").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}
	return items, total, nil
}

// LEDGER VIEWS

// ListPlaceItems returns the ledger rows at a place
func (s *Service) ListPlaceItems(placeID uint) ([]PlaceItem, error) {
	var place Place
	if err := s.db.First(&place, placeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("place %d", placeID)
		}
		return nil, fmt.Errorf("failed to load place: %w", err)
	}

	var rows []PlaceItem
	if err := s.db.Preload("Item").Where("place_id = ?", placeID).
		Order("item_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list ledger rows: %w", err)
	}
	return rows, nil
}

// ItemStockSummary is the total on-hand quantity of one item across places
type ItemStockSummary struct {
	ItemID     uint   `json:"item_id"`
	PartNumber string `json:"part_number"`
	Total      int    `json:"total"`
}

// GetItemStock returns where an item currently sits and its total
func (s *Service) GetItemStock(itemID uint) ([]PlaceItem, *ItemStockSummary, error) {
	var item Item
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFoundf("item %d", itemID)
		}
		return nil, nil, fmt.Errorf("failed to load item: %w", err)
	}

	var rows []PlaceItem
	if err := s.db.Preload("Place").Where("item_id = ?", itemID).
		Order("place_id").Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list ledger rows: %w", err)
	}

	summary := &ItemStockSummary{ItemID: item.ID, PartNumber: item.PartNumber}
	for _, row := range rows {
		summary.Total += row.Quantity
	}
	return rows, summary, nil
}
