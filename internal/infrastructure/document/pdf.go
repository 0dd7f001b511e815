// Package document inspects uploaded files to determine their page count.
package document

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/web2print/backend/internal/domain/shared"
)

// Inspector determines the printable page count of an uploaded document
type Inspector struct{}

// NewInspector creates a new Inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// Count returns the page count of the document held in data.
// PDF files are parsed with pdfcpu; a parse failure means the upload is
// rejected rather than priced with a guessed count. Any other format counts
// as a single page without inspection.
func (i *Inspector) Count(data []byte, fileName, contentType string) (int, error) {
	if !isPDF(fileName, contentType) {
		return 1, nil
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, shared.ErrDocumentUnreadable
	}
	if count < 1 {
		return 0, shared.ErrDocumentUnreadable
	}
	return count, nil
}

func isPDF(fileName, contentType string) bool {
	if strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return true
	}
	mt := strings.ToLower(contentType)
	if idx := strings.Index(mt, ";"); idx >= 0 {
		mt = mt[:idx]
	}
	return strings.TrimSpace(mt) == "application/pdf"
}
