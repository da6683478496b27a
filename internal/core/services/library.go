package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driving"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService reports on the manuals held in the vector index.
type LibraryService struct {
	store driven.VectorStore
}

// NewLibraryService creates a library service backed by the given store.
func NewLibraryService(store driven.VectorStore) *LibraryService {
	return &LibraryService{store: store}
}

// Manuals lists the indexed documents ordered by title.
func (s *LibraryService) Manuals(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list manuals: %w", err)
	}
	return docs, nil
}

// Stats summarises the index contents and its on-disk location.
func (s *LibraryService) Stats(ctx context.Context) (domain.IndexInfo, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return domain.IndexInfo{}, fmt.Errorf("list manuals: %w", err)
	}

	chunks, err := s.store.ChunkCount(ctx)
	if err != nil {
		return domain.IndexInfo{}, fmt.Errorf("count chunks: %w", err)
	}

	pages := 0
	for _, doc := range docs {
		pages += doc.Pages
	}

	return domain.IndexInfo{
		Documents: len(docs),
		Pages:     pages,
		Chunks:    chunks,
		Path:      s.store.Path(),
	}, nil
}
