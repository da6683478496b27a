// Package gemini provides an embedding service adapter using the Google
// Gemini API.
package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/custodia-labs/manualqa-cli/internal/adapters/driven/googleai"
	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel = domain.DefaultEmbeddingModel

	// DefaultBatchSize is the largest batch the BatchEmbedContents
	// endpoint accepts.
	DefaultBatchSize = 100
)

// Config holds configuration for the Gemini embedding service.
type Config struct {
	// APIKey authenticates against the Gemini API. When empty the
	// service still constructs, and every hosted call fails with a
	// *domain.ConfigError naming the missing credential. That keeps
	// commands that never reach the hosted service usable without a key.
	APIKey string

	// Model is the embedding model to use (default: embedding-001).
	Model string

	// BatchSize caps how many texts go into one batch request
	// (default and maximum: 100).
	BatchSize int

	// RateLimit overrides the default request throttling when set.
	RateLimit googleai.RateLimitConfig
}

// EmbeddingService generates embeddings using the Gemini API.
type EmbeddingService struct {
	client     *genai.Client
	model      *genai.EmbeddingModel
	modelName  string
	dimensions int
	batchSize  int
	limiter    *googleai.RateLimiter
}

// NewEmbeddingService creates a new Gemini embedding service. A missing
// API key is not a construction error; it surfaces as a
// *domain.ConfigError on the first embedding call.
func NewEmbeddingService(ctx context.Context, cfg Config) (*EmbeddingService, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BatchSize <= 0 || cfg.BatchSize > DefaultBatchSize {
		cfg.BatchSize = DefaultBatchSize
	}

	limiter := googleai.NewRateLimiter(googleai.ServiceEmbedding)
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = googleai.NewRateLimiterWithConfig(cfg.RateLimit)
	}

	s := &EmbeddingService{
		modelName:  cfg.Model,
		dimensions: domain.DimensionsForModel(cfg.Model),
		batchSize:  cfg.BatchSize,
		limiter:    limiter,
	}

	if cfg.APIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		s.client = client
		s.model = client.EmbeddingModel(cfg.Model)
	}

	return s, nil
}

// ready reports whether a credential was configured.
func (s *EmbeddingService) ready() error {
	if s.client == nil {
		return domain.NewConfigError(domain.EnvGoogleAPIKey, nil)
	}
	return nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var res *genai.EmbedContentResponse
	err := s.limiter.Do(ctx, func() error {
		var callErr error
		res, callErr = s.model.EmbedContent(ctx, genai.Text(text))
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: embed content: %w", err)
	}

	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini: model %s returned an empty embedding", s.modelName)
	}

	return res.Embedding.Values, nil
}

// EmbedBatch generates embeddings for multiple texts using the batch
// endpoint. Texts are grouped into requests of at most BatchSize entries,
// and the returned embeddings are in input order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	embeddings := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += s.batchSize {
		end := start + s.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch := s.model.NewBatch()
		for _, text := range texts[start:end] {
			batch.AddContent(genai.Text(text))
		}

		var res *genai.BatchEmbedContentsResponse
		err := s.limiter.Do(ctx, func() error {
			var callErr error
			res, callErr = s.model.BatchEmbedContents(ctx, batch)
			return callErr
		})
		if err != nil {
			return nil, fmt.Errorf("gemini: batch embed texts %d-%d: %w", start, end-1, err)
		}

		if len(res.Embeddings) != end-start {
			return nil, fmt.Errorf("gemini: batch returned %d embeddings for %d texts", len(res.Embeddings), end-start)
		}
		for i, emb := range res.Embeddings {
			if emb == nil || len(emb.Values) == 0 {
				return nil, fmt.Errorf("gemini: empty embedding for text %d", start+i)
			}
			embeddings = append(embeddings, emb.Values)
		}
	}

	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.modelName
}

// Ping validates the API key and model by embedding a short probe string.
// Unlike a connectivity check this exercises the real endpoint, so quota
// and authorisation problems surface before a long ingestion run starts.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	_, err := s.Embed(ctx, "ping")
	if err == nil {
		return nil
	}
	if googleai.IsUnauthorized(err) {
		return fmt.Errorf("gemini rejected the API key, check %s: %w", domain.EnvGoogleAPIKey, err)
	}
	return err
}

// Close releases the underlying API client connection.
func (s *EmbeddingService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
