package domain

import "fmt"

// Default configuration values.
const (
	// DefaultDocsDir is where PDF manuals are read from.
	DefaultDocsDir = "docs"

	// DefaultEmbeddingModel is the Google embedding model.
	DefaultEmbeddingModel = "embedding-001"

	// DefaultLLMModel is the Google generative model answering questions.
	DefaultLLMModel = "gemini-1.5-pro-latest"

	// DefaultTemperature favours deterministic, factual answers.
	DefaultTemperature float32 = 0.3

	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the character overlap between
	// consecutive chunks.
	DefaultChunkOverlap = 100

	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 3
)

// DocsSettings configures where manuals are loaded from.
type DocsSettings struct {
	// Dir is the directory scanned for PDF files.
	Dir string
}

// IndexSettings configures vector index persistence.
type IndexSettings struct {
	// Path is the index database file. Empty means the default
	// location under the user's home directory.
	Path string
}

// ChunkerSettings configures text splitting.
type ChunkerSettings struct {
	// Size is the target chunk length in characters.
	Size int

	// Overlap is the character overlap between consecutive chunks.
	Overlap int
}

// EmbeddingSettings configures the embedding model.
type EmbeddingSettings struct {
	// Model is the Google embedding model name.
	Model string
}

// LLMSettings configures the generative model.
type LLMSettings struct {
	// Model is the Google generative model name.
	Model string

	// Temperature controls generation randomness.
	Temperature float32
}

// RetrievalSettings configures similarity retrieval.
type RetrievalSettings struct {
	// TopK is the number of chunks retrieved per question.
	TopK int
}

// AppSettings aggregates all user-configurable settings.
type AppSettings struct {
	Docs      DocsSettings
	Index     IndexSettings
	Chunker   ChunkerSettings
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Retrieval RetrievalSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Docs:      DocsSettings{Dir: DefaultDocsDir},
		Index:     IndexSettings{Path: ""},
		Chunker:   ChunkerSettings{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap},
		Embedding: EmbeddingSettings{Model: DefaultEmbeddingModel},
		LLM:       LLMSettings{Model: DefaultLLMModel, Temperature: DefaultTemperature},
		Retrieval: RetrievalSettings{TopK: DefaultTopK},
	}
}

// Validate checks settings for internal consistency.
func (s AppSettings) Validate() error {
	if s.Docs.Dir == "" {
		return fmt.Errorf("%w: docs directory must not be empty", ErrInvalidInput)
	}
	if s.Chunker.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", ErrInvalidInput)
	}
	if s.Chunker.Overlap < 0 || s.Chunker.Overlap >= s.Chunker.Size {
		return fmt.Errorf("%w: chunk overlap must be in [0, size)", ErrInvalidInput)
	}
	if s.Embedding.Model == "" {
		return fmt.Errorf("%w: embedding model must not be empty", ErrInvalidInput)
	}
	if s.LLM.Model == "" {
		return fmt.Errorf("%w: llm model must not be empty", ErrInvalidInput)
	}
	if s.LLM.Temperature < 0 || s.LLM.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be in [0, 2]", ErrInvalidInput)
	}
	if s.Retrieval.TopK <= 0 {
		return fmt.Errorf("%w: retrieval top-k must be positive", ErrInvalidInput)
	}
	return nil
}

// EmbeddingDimensions maps known embedding models to their vector sizes.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		"embedding-001":        768,
		"text-embedding-004":   768,
		"gemini-embedding-001": 3072,
	}
}

// DimensionsForModel returns the vector size for a known model, or
// the embedding-001 default when the model is not recognised.
func DimensionsForModel(model string) int {
	if dims, ok := EmbeddingDimensions()[model]; ok {
		return dims
	}
	return 768
}
