// internal/interfaces/http/handlers/warehouse.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/warehouse-backend/internal/config"
	"github.com/your-org/warehouse-backend/internal/domain/warehouse"
)

// WarehouseHandler handles warehouse topology and stock ledger endpoints
type WarehouseHandler struct {
	catalog *warehouse.Service
	config  *config.Config
}

// NewWarehouseHandler creates a new warehouse handler
func NewWarehouseHandler(db *gorm.DB, cfg *config.Config) *WarehouseHandler {
	return &WarehouseHandler{
		catalog: warehouse.NewService(db, cfg),
		config:  cfg,
	}
}

// CreateStock creates a warehouse site
func (h *WarehouseHandler) CreateStock(c *gin.Context) {
	var req warehouse.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	stock, err := h.catalog.CreateStock(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Stock created successfully",
		"data":    stock,
	})
}

// CreateZone creates a zone within a stock
func (h *WarehouseHandler) CreateZone(c *gin.Context) {
	var req warehouse.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	zone, err := h.catalog.CreateZone(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Zone created successfully",
		"data":    zone,
	})
}

// CreatePlace creates a storage place within a zone
func (h *WarehouseHandler) CreatePlace(c *gin.Context) {
	var req warehouse.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	place, err := h.catalog.CreatePlace(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Place created successfully",
		"data":    place,
	})
}

// ListPlaces lists storage places
func (h *WarehouseHandler) ListPlaces(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	places, total, err := h.catalog.ListPlaces(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"places": places,
			"total":  total,
			"page":   page,
			"limit":  limit,
		},
	})
}

// GetPlaceStock lists ledger rows held at one place
func (h *WarehouseHandler) GetPlaceStock(c *gin.Context) {
	placeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid place ID",
		})
		return
	}

	rows, err := h.catalog.ListPlaceItems(uint(placeID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
	})
}

// CreateItem creates a catalog item
func (h *WarehouseHandler) CreateItem(c *gin.Context) {
	var req warehouse.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.catalog.CreateItem(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item created successfully",
		"data":    item,
	})
}

// ListItems lists catalog items with optional part number search
func (h *WarehouseHandler) ListItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	search := c.Query("search")

	items, total, err := h.catalog.ListItems(page, limit, search)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items": items,
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetItemStock returns where an item sits and the total quantity on hand
func (h *WarehouseHandler) GetItemStock(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID",
		})
		return
	}

	rows, summary, err := h.catalog.GetItemStock(uint(itemID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"summary":   summary,
			"locations": rows,
		},
	})
}
