package driven

import (
	"context"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

// DocumentLoader reads manuals from a configured location and extracts
// their text page by page.
//
// Implementations may include:
//   - PDF files from a local directory
//   - Archives or remote object storage in future
type DocumentLoader interface {
	// Load reads every manual and returns them in a stable order together
	// with their text-bearing pages. Pages that contain no extractable
	// text are skipped.
	//
	// Returns domain.ErrNoDocuments (wrapped) when the location holds no
	// readable manuals at all.
	Load(ctx context.Context) ([]LoadedDocument, error)
}

// LoadedDocument pairs a document with its extracted pages.
type LoadedDocument struct {
	// Document describes the manual the pages came from.
	Document domain.Document

	// Pages holds the text-bearing pages in page-number order.
	Pages []domain.Page
}
