// Package gemini provides an LLM service adapter using the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/custodia-labs/manualqa-cli/internal/adapters/driven/googleai"
	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = domain.DefaultLLMModel

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey authenticates against the Gemini API. When empty the
	// service still constructs, and Generate fails with a
	// *domain.ConfigError naming the missing credential. That keeps
	// commands that never reach the hosted service usable without a key.
	APIKey string

	// Model is the generation model to use (default: gemini-1.5-pro-latest).
	Model string

	// RateLimit overrides the default request throttling when set.
	RateLimit googleai.RateLimitConfig
}

// LLMService produces text completions using the Gemini API.
type LLMService struct {
	client    *genai.Client
	modelName string
	limiter   *googleai.RateLimiter
}

// NewLLMService creates a new Gemini LLM service. A missing API key is
// not a construction error; it surfaces as a *domain.ConfigError on the
// first generation call.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	limiter := googleai.NewRateLimiter(googleai.ServiceGeneration)
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = googleai.NewRateLimiterWithConfig(cfg.RateLimit)
	}

	s := &LLMService{
		modelName: cfg.Model,
		limiter:   limiter,
	}

	if cfg.APIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		s.client = client
	}

	return s, nil
}

// Generate produces a text completion from a prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if s.client == nil {
		return "", domain.NewConfigError(domain.EnvGoogleAPIKey, nil)
	}

	model := s.client.GenerativeModel(s.modelName)
	model.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}

	var resp *genai.GenerateContentResponse
	err := s.limiter.Do(ctx, func() error {
		var callErr error
		resp, callErr = model.GenerateContent(ctx, genai.Text(prompt))
		return callErr
	})
	if err != nil {
		if googleai.IsUnauthorized(err) {
			return "", fmt.Errorf("gemini rejected the API key, check %s: %w", domain.EnvGoogleAPIKey, err)
		}
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	return responseText(resp)
}

// responseText flattens the first candidate into plain text.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: response contained no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", fmt.Errorf("gemini: candidate withheld (finish reason %v)", candidate.FinishReason)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini: response contained no text parts")
	}

	return sb.String(), nil
}

// ModelName returns the name of the generation model being used.
func (s *LLMService) ModelName() string {
	return s.modelName
}

// Close releases the underlying API client connection.
func (s *LLMService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
