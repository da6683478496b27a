package driven

import (
	"context"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

// VectorStore persists chunks with their embeddings and answers
// similarity queries over them.
type VectorStore interface {
	// SaveDocument inserts or updates a document record.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// SaveChunks inserts or updates a batch of chunks with their embeddings.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// Search finds the k chunks most similar to the query vector, ordered by
	// descending cosine similarity.
	Search(ctx context.Context, query []float32, k int) ([]domain.ChunkMatch, error)

	// ListDocuments returns all stored documents ordered by title.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// ChunkCount returns the total number of stored chunks.
	ChunkCount(ctx context.Context) (int, error)

	// Clear removes all documents and chunks, leaving an empty store.
	Clear(ctx context.Context) error

	// Path returns the location of the backing store.
	Path() string

	// Close releases resources.
	Close() error
}
