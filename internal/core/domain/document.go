package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Document represents one PDF manual in the indexed library.
// It is the source of truth for provenance metadata and is never
// mutated after ingestion.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Path is the location of the PDF file at ingestion time.
	Path string

	// Title is the human-readable title derived from the filename.
	Title string

	// Pages is the number of text-bearing pages extracted.
	Pages int

	// IngestedAt is when the document was indexed.
	IngestedAt time.Time
}

// Basename returns the file name component of the document path.
func (d Document) Basename() string {
	return filepath.Base(d.Path)
}

// TitleFromPath derives a display title from a PDF file path:
// the base name without its extension, underscores replaced by spaces.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(base, "_", " ")
}

// Page is one page of text extracted from a manual. Pages are
// transient: they exist between loading and chunking and are
// consumed entirely by the chunker.
type Page struct {
	// SourceFile is the path of the PDF the page came from.
	SourceFile string

	// Number is the 1-based page number within the PDF.
	Number int

	// Text is the raw extracted page text.
	Text string
}

// Chunk is the atomic unit of retrieval: a bounded-length text
// segment that retains the source file and page it was cut from.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// SourceFile is the path of the PDF the chunk was derived from.
	SourceFile string

	// Page is the 1-based page number the chunk was derived from.
	Page int

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation for similarity search.
	Embedding []float32
}

// SourceBase returns the file name component of the chunk's source path.
func (c Chunk) SourceBase() string {
	return filepath.Base(c.SourceFile)
}

// Excerpt returns up to maxLen runes of the chunk content, with an
// ellipsis appended when the content was truncated.
func (c Chunk) Excerpt(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(c.Content)
	if len(runes) <= maxLen {
		return c.Content
	}
	return string(runes[:maxLen]) + "..."
}
