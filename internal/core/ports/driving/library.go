package driving

import (
	"context"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

// LibraryService reports on the manuals held in the index.
type LibraryService interface {
	// Manuals lists the indexed documents ordered by title.
	Manuals(ctx context.Context) ([]domain.Document, error)

	// Stats summarises the index: document, page, and chunk totals plus the
	// on-disk location.
	Stats(ctx context.Context) (domain.IndexInfo, error)
}
