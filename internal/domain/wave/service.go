// internal/domain/wave/service.go
package wave

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/warehouse-backend/internal/config"
	"github.com/your-org/warehouse-backend/internal/domain/warehouse"
	"github.com/your-org/warehouse-backend/internal/pkg/apperr"
)

// DocumentRemover removes the uploaded-document folder of a deleted
// wave. Implemented by document.Store.
type DocumentRemover interface {
	RemoveDir(dir string) error
}

// Service handles wave business logic
type Service struct {
	db        *gorm.DB
	config    *config.Config
	catalog   *warehouse.Service
	documents DocumentRemover
}

// NewService creates a new wave service
func NewService(db *gorm.DB, cfg *config.Config, catalog *warehouse.Service, documents DocumentRemover) *Service {
	return &Service{
		db:        db,
		config:    cfg,
		catalog:   catalog,
		documents: documents,
	}
}

// CreateWaveRequest represents wave creation data. The form file with
// line items travels alongside as a multipart upload.
type CreateWaveRequest struct {
	Kind         string    `form:"kind" binding:"required"`
	StockID      uint      `form:"stock_id" binding:"required"`
	Counterparty string    `form:"counterparty" binding:"required"`
	PlannedDate  time.Time `form:"planned_date" binding:"required" time_format:"2006-01-02"`
	Status       string    `form:"status"`
	Description  string    `form:"description"`
}

// WaveListRequest represents wave list query parameters
type WaveListRequest struct {
	Page         int    `form:"page,default=1"`
	Limit        int    `form:"limit,default=20"`
	Kind         string `form:"kind"`
	Number       string `form:"number"`
	Counterparty string `form:"counterparty"`
	Status       string `form:"status"`
	StockID      uint   `form:"stock_id"`
	DateFrom     string `form:"date_from"`
	DateTo       string `form:"date_to"`
}

// normalize floors page and limit. An explicit ?limit=0 or ?page=0
// slips past the form defaults and would otherwise divide by zero in
// the page count.
func (r *WaveListRequest) normalize() {
	if r.Limit < 1 {
		r.Limit = 20
	}
	if r.Page < 1 {
		r.Page = 1
	}
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// WaveListResponse represents wave list response with pagination
type WaveListResponse struct {
	Waves      []Wave     `json:"waves"`
	Pagination Pagination `json:"pagination"`
}

// LineItemView is the read-only projection of one line item consumed by
// reporting and list screens.
type LineItemView struct {
	ItemCode    string `json:"item_code"`
	Quantity    int    `json:"qty"`
	WeightGrams int    `json:"weight"`
	Description string `json:"description"`
}

// CreateWave creates a wave together with its number and its line items
// parsed from the uploaded form file, all in one transaction. A failure
// anywhere leaves no wave, no number consumed and no line items behind.
func (s *Service) CreateWave(userID uint, req *CreateWaveRequest, formFile io.Reader, formFilename string) (*Wave, error) {
	kind, err := ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}

	counterparty, err := NormalizeCounterparty(req.Counterparty)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Description)
	if len(description) > maxWaveDescriptionLen {
		return nil, apperr.Validationf("description must be at most %d characters", maxWaveDescriptionLen)
	}

	status := StatusPlanned
	if req.Status != "" {
		if status, err = ParseStatus(req.Status); err != nil {
			return nil, err
		}
	}

	var stock warehouse.Stock
	if err := s.db.First(&stock, req.StockID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("stock %d", req.StockID)
		}
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}

	lines, err := ParseLineItems(formFile, formFilename, kind)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	number, err := nextNumber(tx, kind, time.Now().Year())
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	w := &Wave{
		Kind:         kind,
		Number:       number,
		StockID:      stock.ID,
		Status:       status,
		Counterparty: counterparty,
		PlannedDate:  req.PlannedDate,
		Description:  description,
		CreatedBy:    userID,
	}
	if status == StatusCompleted {
		now := time.Now()
		w.ActualDate = &now
	}
	if err := tx.Create(w).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create wave: %w", err)
	}

	for _, line := range lines {
		item, err := s.catalog.GetOrCreateItem(tx, line.PartNumber, line.Description, line.WeightGrams)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		waveItem := WaveItem{
			WaveID:        w.ID,
			ItemID:        item.ID,
			TotalQuantity: line.Quantity,
		}
		if err := tx.Create(&waveItem).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create line item: %w", err)
		}
		waveItem.Item = *item
		w.Items = append(w.Items, waveItem)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit wave creation: %w", err)
	}
	return w, nil
}

// GetWaves retrieves waves matching the filters, paginated
func (s *Service) GetWaves(req *WaveListRequest) (*WaveListResponse, error) {
	var waves []Wave
	var total int64

	req.normalize()

	query := s.db.Model(&Wave{}).Preload("Items.Item").Preload("Stock")

	if req.Kind != "" {
		kind, err := ParseKind(req.Kind)
		if err != nil {
			return nil, err
		}
		query = query.Where("kind = ?", kind)
	}
	if req.Number != "" {
		query = query.Where("number LIKE ?", "%"+strings.ToUpper(strings.TrimSpace(req.Number))+"%")
	}
	if req.Counterparty != "" {
		query = query.Where("counterparty LIKE ?", "%"+strings.ToUpper(strings.TrimSpace(req.Counterparty))+"%")
	}
	if req.Status != "" {
		status, err := ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		query = query.Where("status = ?", status)
	}
	if req.StockID > 0 {
		query = query.Where("stock_id = ?", req.StockID)
	}
	if req.DateFrom != "" {
		query = query.Where("planned_date >= ?", req.DateFrom)
	}
	if req.DateTo != "" {
		query = query.Where("planned_date <= ?", req.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count waves: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).
		Find(&waves).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve waves: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &WaveListResponse{
		Waves: waves,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// GetWave retrieves a single wave by ID
func (s *Service) GetWave(id uint) (*Wave, error) {
	var w Wave
	err := s.db.Preload("Items.Item").Preload("Stock").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&w, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("wave %d", id)
		}
		return nil, fmt.Errorf("failed to retrieve wave: %w", err)
	}
	return &w, nil
}

// GetWaveByNumber retrieves a single wave by its number
func (s *Service) GetWaveByNumber(number string) (*Wave, error) {
	var w Wave
	err := s.db.Preload("Items.Item").Preload("Stock").
		Where("number = ?", strings.ToUpper(strings.TrimSpace(number))).
		First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("wave '%s'", number)
		}
		return nil, fmt.Errorf("failed to retrieve wave: %w", err)
	}
	return &w, nil
}

// ListLineItems returns the ordered line-item projection of a wave
func (s *Service) ListLineItems(waveID uint) ([]LineItemView, error) {
	w, err := s.GetWave(waveID)
	if err != nil {
		return nil, err
	}

	views := make([]LineItemView, 0, len(w.Items))
	for _, line := range w.Items {
		views = append(views, LineItemView{
			ItemCode:    line.Item.PartNumber,
			Quantity:    line.TotalQuantity,
			WeightGrams: line.Item.WeightGrams,
			Description: line.Item.Description,
		})
	}
	return views, nil
}

// DeleteWave deletes a wave, its line items, its status history and its
// uploaded-document folder. Waves that already moved stock cannot be
// deleted; cancel them instead.
func (s *Service) DeleteWave(id uint) error {
	w, err := s.GetWave(id)
	if err != nil {
		return err
	}
	if w.Status == StatusInProgress || w.Status == StatusCompleted {
		return apperr.Validationf("wave %s has moved stock and cannot be deleted", w.Number)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("wave_id = ?", w.ID).Delete(&WaveItem{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete line items: %w", err)
	}
	if err := tx.Where("wave_id = ?", w.ID).Delete(&WaveStatusHistory{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete status history: %w", err)
	}
	if err := tx.Delete(&Wave{}, w.ID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete wave: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit wave deletion: %w", err)
	}

	if err := s.documents.RemoveDir(w.UploadsDir()); err != nil {
		return fmt.Errorf("wave deleted but document cleanup failed: %w", err)
	}
	return nil
}
