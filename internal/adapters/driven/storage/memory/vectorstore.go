// Package memory provides in-memory implementations of driven ports,
// used in tests and anywhere persistence is not wanted.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-memory implementation of driven.VectorStore.
type VectorStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string]domain.Chunk
	order     []string
}

// NewVectorStore creates a new in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string]domain.Chunk),
	}
}

// SaveDocument stores or updates a document.
func (s *VectorStore) SaveDocument(_ context.Context, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = doc
	return nil
}

// SaveChunks stores or updates a batch of chunks.
func (s *VectorStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, chunk := range chunks {
		if _, exists := s.chunks[chunk.ID]; !exists {
			s.order = append(s.order, chunk.ID)
		}
		s.chunks[chunk.ID] = chunk
	}
	return nil
}

// Search finds the k most similar chunks by cosine similarity.
func (s *VectorStore) Search(_ context.Context, query []float32, k int) ([]domain.ChunkMatch, error) {
	if k <= 0 {
		return nil, fmt.Errorf("top-k must be positive: %w", domain.ErrInvalidInput)
	}
	if len(query) == 0 {
		return nil, fmt.Errorf("empty query embedding: %w", domain.ErrInvalidInput)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []domain.ChunkMatch
	for _, id := range s.order {
		chunk := s.chunks[id]
		if len(chunk.Embedding) != len(query) {
			continue
		}
		matches = append(matches, domain.ChunkMatch{
			Chunk: chunk,
			Score: cosine(query, chunk.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// ListDocuments returns all stored documents ordered by title.
func (s *VectorStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Title < docs[j].Title })
	return docs, nil
}

// ChunkCount returns the number of stored chunks.
func (s *VectorStore) ChunkCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// Clear removes all documents and chunks.
func (s *VectorStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = make(map[string]domain.Document)
	s.chunks = make(map[string]domain.Chunk)
	s.order = nil
	return nil
}

// Path identifies the store in log output; there is no backing file.
func (s *VectorStore) Path() string {
	return ":memory:"
}

// Close is a no-op for the in-memory store.
func (s *VectorStore) Close() error {
	return nil
}

func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
