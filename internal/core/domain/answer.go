package domain

// ExcerptLength is the number of characters of chunk text shown
// when a citation is rendered.
const ExcerptLength = 250

// ChunkMatch pairs a retrieved chunk with its similarity score.
type ChunkMatch struct {
	// Chunk is the retrieved segment, hydrated with its text and
	// provenance metadata.
	Chunk Chunk

	// Score is the cosine similarity to the query embedding.
	Score float64
}

// Answer is the synthesized response to one question.
// It is transient: it exists only for the duration of one
// question/answer cycle.
type Answer struct {
	// Text is the model-generated answer.
	Text string

	// Sources are the chunks the answer was grounded on, in
	// similarity-descending order. Never more than the retrieval
	// top-k, and always drawn from the persisted index.
	Sources []ChunkMatch
}

// IndexInfo describes the state of the vector index after bootstrap.
type IndexInfo struct {
	// Created reports whether ingestion ran in this process.
	// False means an existing index was loaded from disk.
	Created bool

	// Documents is the number of manuals in the index.
	Documents int

	// Pages is the number of text-bearing pages across all manuals.
	Pages int

	// Chunks is the number of retrievable segments in the index.
	Chunks int

	// Path is the on-disk location of the index.
	Path string
}
