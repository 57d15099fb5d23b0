// internal/domain/document/store_test.go
package document

import (
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/your-org/warehouse-backend/internal/config"
	"github.com/your-org/warehouse-backend/internal/pkg/apperr"
)

func testStore() *Store {
	cfg := &config.Config{}
	cfg.Document.MaxSize = 1024
	cfg.Document.AllowedExtensions = []string{"pdf", "csv", "xlsx"}
	return NewStore(nil, cfg)
}

func TestValidateAcceptsAllowedFile(t *testing.T) {
	s := testStore()

	assert.NoError(t, s.validate(&multipart.FileHeader{Filename: "invoice.pdf", Size: 512}))
	assert.NoError(t, s.validate(&multipart.FileHeader{Filename: "FORM.XLSX", Size: 1024}))
}

func TestValidateRejectsOversizedFile(t *testing.T) {
	s := testStore()

	err := s.validate(&multipart.FileHeader{Filename: "invoice.pdf", Size: 2048})
	assert.Error(t, err)
	assert.True(t, apperr.IsResource(err))
}

func TestValidateRejectsDisallowedExtension(t *testing.T) {
	s := testStore()

	for _, name := range []string{"payload.exe", "notes.txt", "noextension"} {
		err := s.validate(&multipart.FileHeader{Filename: name, Size: 10})
		assert.Error(t, err, name)
		assert.True(t, apperr.IsResource(err), name)
	}
}

func TestDirPatternStopsAtFolderBoundary(t *testing.T) {
	pattern := dirPattern("inbounds/INB-2026-1000")

	assert.Equal(t, "inbounds/INB-2026-1000/%", pattern)
	// Once sequences pass four digits the shorter number is a plain
	// string prefix of the longer one, only the separator keeps the
	// two folders apart.
	assert.True(t, strings.HasPrefix("inbounds/INB-2026-1000/17_ab12cd34.pdf", pattern[:len(pattern)-1]))
	assert.False(t, strings.HasPrefix("inbounds/INB-2026-10001/17_ab12cd34.pdf", pattern[:len(pattern)-1]))
}
