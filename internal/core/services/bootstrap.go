package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/manualqa-cli/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService prepares the vector index exactly once per process: when
// the index file already existed on disk it is served as-is, otherwise
// the documents directory is ingested from scratch. The outcome, success
// or failure, is cached for the process lifetime.
type IndexService struct {
	loader   driven.DocumentLoader
	chunker  driven.Chunker
	embedder driven.EmbeddingService
	store    driven.VectorStore

	// existed records whether the index file was on disk before the
	// store opened it. Opening the store creates the file, so the
	// caller must stat before wiring the store.
	existed bool

	mu   sync.Mutex
	done bool
	info domain.IndexInfo
	err  error
}

// NewIndexService creates the index bootstrap service. existed reports
// whether the index file was already present before the store was opened.
func NewIndexService(
	loader driven.DocumentLoader,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	existed bool,
) *IndexService {
	return &IndexService{
		loader:   loader,
		chunker:  chunker,
		embedder: embedder,
		store:    store,
		existed:  existed,
	}
}

// Ensure makes the index ready at most once per process lifetime.
// Repeated calls return the first outcome, including a cached failure.
func (s *IndexService) Ensure(ctx context.Context) (domain.IndexInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return s.info, s.err
	}

	if s.existed {
		s.info, s.err = s.load(ctx)
	} else {
		s.info, s.err = s.ingest(ctx)
	}
	s.done = true

	return s.info, s.err
}

// Rebuild discards the index contents and ingests the documents directory
// again. The new outcome replaces whatever Ensure had cached.
func (s *IndexService) Rebuild(ctx context.Context) (domain.IndexInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Section("Rebuild")
	if err := s.store.Clear(ctx); err != nil {
		s.info = domain.IndexInfo{}
		s.err = domain.NewIngestError(domain.StagePersist, fmt.Errorf("clear index: %w", err))
		s.done = true
		return s.info, s.err
	}

	s.info, s.err = s.ingest(ctx)
	s.done = true

	return s.info, s.err
}

// load opens the existing index without reading any source documents.
// Nothing validates that the index still matches the documents directory;
// Rebuild is the recovery path for a stale index.
func (s *IndexService) load(ctx context.Context) (domain.IndexInfo, error) {
	logger.Section("Index")
	logger.Info("Loading existing vector index from %s", s.store.Path())

	info, err := s.summarise(ctx, false)
	if err != nil {
		return domain.IndexInfo{}, domain.NewIngestError(domain.StageLoad, err)
	}

	logger.Info("Index ready: %d manual(s), %d chunks", info.Documents, info.Chunks)
	return info, nil
}

// ingest runs the full pipeline: load, split, embed, persist.
func (s *IndexService) ingest(ctx context.Context) (domain.IndexInfo, error) {
	logger.Section("Ingestion")
	logger.Info("Building vector index at %s", s.store.Path())

	// 1. LOAD every PDF in the documents directory
	loaded, err := s.loader.Load(ctx)
	if err != nil {
		return domain.IndexInfo{}, domain.NewIngestError(domain.StageLoad, err)
	}
	logger.Info("Loaded %d manual(s)", len(loaded))

	// 2. SPLIT pages into overlapping chunks
	var chunks []domain.Chunk
	for _, doc := range loaded {
		split, err := s.chunker.Split(doc.Document, doc.Pages)
		if err != nil {
			return domain.IndexInfo{}, domain.NewIngestError(domain.StageSplit,
				fmt.Errorf("split %s: %w", doc.Document.Basename(), err))
		}
		chunks = append(chunks, split...)
	}
	logger.Info("Split into %d chunks", len(chunks))

	// 3. EMBED all chunk texts in batches. Ping first so credential and
	// quota problems surface before a long embedding run.
	if err := s.embedder.Ping(ctx); err != nil {
		return domain.IndexInfo{}, domain.NewIngestError(domain.StageEmbed, err)
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return domain.IndexInfo{}, domain.NewIngestError(domain.StageEmbed, err)
	}
	if len(embeddings) != len(chunks) {
		return domain.IndexInfo{}, domain.NewIngestError(domain.StageEmbed,
			fmt.Errorf("expected %d embeddings, got %d", len(chunks), len(embeddings)))
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}
	logger.Info("Embedded %d chunks with %s", len(chunks), s.embedder.ModelName())

	// 4. PERSIST documents first (chunks reference them), then chunks
	for _, doc := range loaded {
		if err := s.store.SaveDocument(ctx, doc.Document); err != nil {
			return domain.IndexInfo{}, domain.NewIngestError(domain.StagePersist,
				fmt.Errorf("save %s: %w", doc.Document.Basename(), err))
		}
	}
	if err := s.store.SaveChunks(ctx, chunks); err != nil {
		return domain.IndexInfo{}, domain.NewIngestError(domain.StagePersist, err)
	}

	info, err := s.summarise(ctx, true)
	if err != nil {
		return domain.IndexInfo{}, domain.NewIngestError(domain.StagePersist, err)
	}

	logger.Info("Index created: %d manual(s), %d pages, %d chunks",
		info.Documents, info.Pages, info.Chunks)
	return info, nil
}

// summarise reads the index totals back from the store.
func (s *IndexService) summarise(ctx context.Context, created bool) (domain.IndexInfo, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return domain.IndexInfo{}, fmt.Errorf("list documents: %w", err)
	}
	chunkCount, err := s.store.ChunkCount(ctx)
	if err != nil {
		return domain.IndexInfo{}, fmt.Errorf("count chunks: %w", err)
	}

	pages := 0
	for _, doc := range docs {
		pages += doc.Pages
	}

	return domain.IndexInfo{
		Created:   created,
		Documents: len(docs),
		Pages:     pages,
		Chunks:    chunkCount,
		Path:      s.store.Path(),
	}, nil
}
