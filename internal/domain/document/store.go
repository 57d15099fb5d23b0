// internal/domain/document/store.go
package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/your-org/warehouse-backend/internal/config"
	"github.com/your-org/warehouse-backend/internal/pkg/apperr"
)

// Store handles wave document storage: validation, saving under the
// wave's folder, zip packaging for download and cleanup on deletion.
type Store struct {
	db     *gorm.DB
	config *config.Config
}

// NewStore creates a new document store
func NewStore(db *gorm.DB, cfg *config.Config) *Store {
	return &Store{
		db:     db,
		config: cfg,
	}
}

// SaveWaveDocuments validates and saves uploaded files under the wave's
// folder. Every file is validated before any is written, so a rejected
// file never leaves a partial batch on disk.
func (s *Store) SaveWaveDocuments(waveID uint, waveDir string, uploadedBy uint, files []*multipart.FileHeader) ([]Document, error) {
	for _, header := range files {
		if err := s.validate(header); err != nil {
			return nil, err
		}
	}

	dir := filepath.Join(s.config.Document.BasePath, waveDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create document folder: %w", err)
	}

	var saved []Document
	for _, header := range files {
		doc, err := s.saveOne(waveID, waveDir, uploadedBy, header)
		if err != nil {
			return nil, err
		}
		saved = append(saved, *doc)
	}
	return saved, nil
}

func (s *Store) validate(header *multipart.FileHeader) error {
	if header.Size > s.config.Document.MaxSize {
		return apperr.Resourcef("file %s exceeds the %d byte limit", header.Filename, s.config.Document.MaxSize)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	for _, allowed := range s.config.Document.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return apperr.Resourcef("file %s has a disallowed extension '%s'", header.Filename, ext)
}

func (s *Store) saveOne(waveID uint, waveDir string, uploadedBy uint, header *multipart.FileHeader) (*Document, error) {
	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", header.Filename, err)
	}
	defer src.Close()

	ext := filepath.Ext(header.Filename)
	filename := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.New().String()[:8], ext)
	relativePath := filepath.Join(waveDir, filename)
	fullPath := filepath.Join(s.config.Document.BasePath, relativePath)

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", fullPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to save %s: %w", header.Filename, err)
	}

	doc := Document{
		WaveID:       waveID,
		OriginalName: filepath.Base(header.Filename),
		Filename:     filename,
		Path:         relativePath,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		UploadedBy:   uploadedBy,
	}
	if err := s.db.Create(&doc).Error; err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to record document: %w", err)
	}
	return &doc, nil
}

// ListWaveDocuments returns the documents attached to a wave
func (s *Store) ListWaveDocuments(waveID uint) ([]Document, error) {
	var docs []Document
	if err := s.db.Where("wave_id = ?", waveID).Order("created_at").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// GetDocument returns one document together with its absolute path
func (s *Store) GetDocument(id uint) (*Document, string, error) {
	var doc Document
	if err := s.db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.NotFoundf("document %d", id)
		}
		return nil, "", fmt.Errorf("failed to load document: %w", err)
	}
	return &doc, filepath.Join(s.config.Document.BasePath, doc.Path), nil
}

// BuildZip packages every document of a wave into an in-memory zip
// archive. Returns nil when the wave has no documents.
func (s *Store) BuildZip(waveID uint) (*bytes.Buffer, error) {
	docs, err := s.ListWaveDocuments(waveID)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	buffer := new(bytes.Buffer)
	archive := zip.NewWriter(buffer)

	for _, doc := range docs {
		fullPath := filepath.Join(s.config.Document.BasePath, doc.Path)
		src, err := os.Open(fullPath)
		if err != nil {
			archive.Close()
			return nil, fmt.Errorf("failed to open %s: %w", doc.Path, err)
		}

		entry, err := archive.Create(doc.OriginalName)
		if err != nil {
			src.Close()
			archive.Close()
			return nil, fmt.Errorf("failed to add %s to archive: %w", doc.OriginalName, err)
		}
		if _, err := io.Copy(entry, src); err != nil {
			src.Close()
			archive.Close()
			return nil, fmt.Errorf("failed to write %s to archive: %w", doc.OriginalName, err)
		}
		src.Close()
	}

	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buffer, nil
}

// RemoveDir deletes a wave's document folder and its database records.
// Called by the wave service as part of wave deletion.
func (s *Store) RemoveDir(dir string) error {
	fullPath := filepath.Join(s.config.Document.BasePath, dir)
	if err := os.RemoveAll(fullPath); err != nil {
		return fmt.Errorf("failed to remove document folder: %w", err)
	}
	if err := s.db.Where("path LIKE ?", dirPattern(dir)).Delete(&Document{}).Error; err != nil {
		return fmt.Errorf("failed to remove document records: %w", err)
	}
	return nil
}

// dirPattern matches only paths inside dir. The separator keeps
// INB-2026-1000 from sweeping up INB-2026-10001's records.
func dirPattern(dir string) string {
	return strings.TrimRight(dir, "/") + "/%"
}
