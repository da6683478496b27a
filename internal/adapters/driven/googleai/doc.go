// Package googleai provides shared infrastructure for the Gemini API adapters.
//
// The embedding and LLM adapters both talk to Google's Generative Language
// API with the same API key, so this package holds the pieces they share:
//   - Rate limiting to respect Gemini API quotas (token bucket with a
//     backoff window after 429 responses)
//   - Error classification for common Google API failures (401, 403, 429),
//     covering both REST and gRPC transports
//
// # Usage
//
// Each adapter constructs a limiter for its API surface and routes every
// outbound call through it:
//
//	limiter := googleai.NewRateLimiter(googleai.ServiceEmbedding)
//	err := limiter.Do(ctx, func() error {
//		res, err = model.EmbedContent(ctx, genai.Text(text))
//		return err
//	})
//
// Do retries once after the server-suggested backoff when the call fails
// with a rate limit error.
package googleai
