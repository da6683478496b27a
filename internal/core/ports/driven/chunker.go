package driven

import "github.com/custodia-labs/manualqa-cli/internal/core/domain"

// Chunker splits extracted page text into retrieval-sized chunks.
//
// Splitting never crosses page boundaries so that every chunk can cite a
// single source file and page number.
type Chunker interface {
	// Split breaks the pages of one document into chunks. Chunks carry the
	// document ID, source file, and page number of the text they came from,
	// and are numbered sequentially across the whole document.
	Split(doc domain.Document, pages []domain.Page) ([]domain.Chunk, error)
}
