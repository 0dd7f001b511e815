package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/web2print/backend/internal/domain/shared"
)

func TestInspectorCount(t *testing.T) {
	inspector := NewInspector()

	t.Run("non-PDF counts as one page", func(t *testing.T) {
		count, err := inspector.Count([]byte("just some text"), "notes.txt", "text/plain")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("image counts as one page", func(t *testing.T) {
		count, err := inspector.Count([]byte{0xFF, 0xD8, 0xFF}, "photo.jpg", "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("corrupt PDF by extension is rejected", func(t *testing.T) {
		_, err := inspector.Count([]byte("this is not a pdf"), "report.pdf", "application/octet-stream")
		assert.Equal(t, shared.ErrDocumentUnreadable, err)
	})

	t.Run("corrupt PDF by content type is rejected", func(t *testing.T) {
		_, err := inspector.Count([]byte("%PDF-1.7 truncated"), "report.bin", "application/pdf")
		assert.Equal(t, shared.ErrDocumentUnreadable, err)
	})

	t.Run("empty PDF payload is rejected", func(t *testing.T) {
		_, err := inspector.Count(nil, "empty.pdf", "application/pdf")
		assert.Equal(t, shared.ErrDocumentUnreadable, err)
	})
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		contentType string
		want        bool
	}{
		{"pdf extension", "thesis.pdf", "", true},
		{"uppercase extension", "THESIS.PDF", "", true},
		{"pdf content type", "upload", "application/pdf", true},
		{"content type with charset", "upload", "application/pdf; charset=binary", true},
		{"plain text", "notes.txt", "text/plain", false},
		{"no hints", "upload", "", false},
		{"pdf in name only", "mypdf.txt", "text/plain", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isPDF(tt.fileName, tt.contentType))
		})
	}
}
