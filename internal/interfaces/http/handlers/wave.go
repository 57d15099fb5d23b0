// internal/interfaces/http/handlers/wave.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/warehouse-backend/internal/config"
	"github.com/your-org/warehouse-backend/internal/domain/document"
	"github.com/your-org/warehouse-backend/internal/domain/warehouse"
	"github.com/your-org/warehouse-backend/internal/domain/wave"
	"github.com/your-org/warehouse-backend/internal/interfaces/http/middleware"
	"github.com/your-org/warehouse-backend/internal/pkg/pdf"
)

// WaveHandler handles wave lifecycle, document and reporting endpoints
type WaveHandler struct {
	db          *gorm.DB
	config      *config.Config
	waveService *wave.Service
	catalog     *warehouse.Service
	documents   *document.Store
	pdfService  *pdf.Service

	mu     sync.Mutex
	engine *wave.Engine
}

// NewWaveHandler creates a new wave handler
func NewWaveHandler(db *gorm.DB, cfg *config.Config) *WaveHandler {
	catalog := warehouse.NewService(db, cfg)
	documents := document.NewStore(db, cfg)

	return &WaveHandler{
		db:          db,
		config:      cfg,
		waveService: wave.NewService(db, cfg, catalog, documents),
		catalog:     catalog,
		documents:   documents,
		pdfService:  pdf.NewService(cfg),
	}
}

// statusEngine returns the transition engine, building it on first use.
// The reserved places are seeded during migration, so they are resolved
// lazily rather than at construction time.
func (h *WaveHandler) statusEngine() (*wave.Engine, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.engine == nil {
		places, err := h.catalog.ResolveReservedPlaces()
		if err != nil {
			return nil, err
		}
		h.engine = wave.NewEngine(h.db, warehouse.NewLedger(), *places)
	}
	return h.engine, nil
}

// CreateWave creates a wave from multipart form fields plus the line
// item form file
func (h *WaveHandler) CreateWave(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req wave.CreateWaveRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	formFile, err := c.FormFile("line_items")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Line item file is required",
		})
		return
	}

	opened, err := formFile.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read line item file",
		})
		return
	}
	defer opened.Close()

	created, err := h.waveService.CreateWave(userID, &req, opened, formFile.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	// Documents may be attached in the same multipart request.
	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["documents"]; len(files) > 0 {
			if _, err := h.documents.SaveWaveDocuments(created.ID, created.UploadsDir(), userID, files); err != nil {
				respondError(c, err)
				return
			}
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Wave created successfully",
		"data":    created,
	})
}

// ListWaves lists waves with filters and pagination
func (h *WaveHandler) ListWaves(c *gin.Context) {
	var req wave.WaveListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	response, err := h.waveService.GetWaves(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}

// GetWave returns one wave with its line items and status history
func (h *WaveHandler) GetWave(c *gin.Context) {
	waveID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid wave ID",
		})
		return
	}

	w, err := h.waveService.GetWave(uint(waveID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": w,
	})
}

// GetWaveByNumber returns one wave looked up by its document number
func (h *WaveHandler) GetWaveByNumber(c *gin.Context) {
	number := c.Param("number")

	w, err := h.waveService.GetWaveByNumber(number)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": w,
	})
}

// ListLineItems returns the line item projection for one wave
func (h *WaveHandler) ListLineItems(c *gin.Context) {
	waveID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid wave ID",
		})
		return
	}

	lines, err := h.waveService.ListLineItems(uint(waveID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": lines,
	})
}

// ChangeStatus moves a wave through its lifecycle
func (h *WaveHandler) ChangeStatus(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	waveID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid wave ID",
		})
		return
	}

	var req struct {
		Status  string `json:"status" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	newStatus, err := wave.ParseStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	engine, err := h.statusEngine()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Status engine unavailable: " + err.Error(),
		})
		return
	}

	updated, err := engine.ChangeStatus(uint(waveID), newStatus, userID, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated successfully",
		"data":    updated,
	})
}

// DeleteWave deletes a wave that has not moved stock
func (h *WaveHandler) DeleteWave(c *gin.Context) {
	waveID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid wave ID",
		})
		return
	}

	if err := h.waveService.DeleteWave(uint(waveID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wave deleted successfully",
	})
}

// UploadDocuments attaches supporting documents to a wave
func (h *WaveHandler) UploadDocuments(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	waveID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid wave ID",
		})
		return
	}

	w, err := h.waveService.GetWave(uint(waveID))
	if err != nil {
		respondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid multipart form",
		})
		return
	}

	files := form.File["documents"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No documents provided",
		})
		return
	}

	saved, err := h.documents.SaveWaveDocuments(w.ID, w.UploadsDir(), userID, files)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Documents uploaded successfully",
		"data":    saved,
	})
}

// ListDocuments lists the documents attached to a wave
func (h *WaveHandler) ListDocuments(c *gin.Context) {
	waveID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid wave ID",
		})
		return
	}

	docs, err := h.documents.ListWaveDocuments(uint(waveID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": docs,
	})
}

// DownloadDocument streams one attached document
func (h *WaveHandler) DownloadDocument(c *gin.Context) {
	docID, err := strconv.ParseUint(c.Param("docId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid document ID",
		})
		return
	}

	doc, path, err := h.documents.GetDocument(uint(docID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.FileAttachment(path, doc.OriginalName)
}

// DownloadArchive streams all of a wave's documents as one zip file
func (h *WaveHandler) DownloadArchive(c *gin.Context) {
	waveID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid wave ID",
		})
		return
	}

	w, err := h.waveService.GetWave(uint(waveID))
	if err != nil {
		respondError(c, err)
		return
	}

	archive, err := h.documents.BuildZip(w.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if archive == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Wave has no documents",
		})
		return
	}

	fileName := fmt.Sprintf("%s_documents.zip", w.Number)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/zip", archive.Bytes())
}

// DownloadFormTemplate streams an empty line item form for the given kind
func (h *WaveHandler) DownloadFormTemplate(c *gin.Context) {
	kind, err := wave.ParseKind(c.DefaultQuery("kind", string(wave.KindInbound)))
	if err != nil {
		respondError(c, err)
		return
	}

	template, err := wave.BuildFormTemplate(kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build form template",
		})
		return
	}

	fileName := fmt.Sprintf("%s_form.xlsx", kind)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := template.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to write form template",
		})
	}
}

// DownloadManifest renders the wave manifest as a PDF
func (h *WaveHandler) DownloadManifest(c *gin.Context) {
	waveID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid wave ID",
		})
		return
	}

	w, err := h.waveService.GetWave(uint(waveID))
	if err != nil {
		respondError(c, err)
		return
	}

	lines, err := h.waveService.ListLineItems(w.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	manifest, err := h.pdfService.GenerateManifest(w, lines)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate manifest: " + err.Error(),
		})
		return
	}

	fileName := fmt.Sprintf("manifest_%s.pdf", w.Number)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/pdf", manifest.Bytes())
}
