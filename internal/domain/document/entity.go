// internal/domain/document/entity.go
package document

import (
	"time"
)

// Document represents one file attached to a wave: a signed delivery
// note, a photo of the shipment, the uploaded form itself.
type Document struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	WaveID       uint      `gorm:"not null;index" json:"wave_id"`
	OriginalName string    `gorm:"not null;size:255" json:"original_name"`
	Filename     string    `gorm:"not null;size:255" json:"filename"`
	Path         string    `gorm:"not null;size:500" json:"path"`
	MimeType     string    `gorm:"size:100" json:"mime_type"`
	Size         int64     `gorm:"not null" json:"size"`
	UploadedBy   uint      `gorm:"index" json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Document) TableName() string {
	return "wave_documents"
}
