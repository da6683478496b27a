package driving

import (
	"context"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

// IndexService prepares the vector index before any question is answered.
type IndexService interface {
	// Ensure makes the index ready exactly once per process. If the index
	// file already existed on disk it is loaded as-is; otherwise the
	// documents directory is ingested from scratch. Repeated calls return
	// the first outcome, success or failure.
	//
	// Ingestion failures are reported as *domain.IngestError.
	Ensure(ctx context.Context) (domain.IndexInfo, error)

	// Rebuild discards the current index contents and ingests the documents
	// directory again. Unlike Ensure it always runs.
	Rebuild(ctx context.Context) (domain.IndexInfo, error)
}
