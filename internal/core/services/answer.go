package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/manualqa-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// noMatchAnswer is returned when retrieval finds nothing to ground an
// answer on. The generator is not called, so no sources are fabricated.
const noMatchAnswer = "I could not find anything relevant in the indexed manuals. " +
	"Try rephrasing the question, or add the manual to the documents directory " +
	"and rebuild the index."

// AnswerService answers questions about the indexed manuals using
// retrieval-augmented generation: embed the question, fetch the most
// similar chunks, and ask the generative model to answer from them.
type AnswerService struct {
	index    driving.IndexService
	embedder driven.EmbeddingService
	store    driven.VectorStore
	llm      driven.LLMService
	prompts  driven.PromptStore

	topK        int
	temperature float32
}

// NewAnswerService creates the answering pipeline. Retrieval and
// generation knobs come from the validated settings snapshot.
func NewAnswerService(
	index driving.IndexService,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	llm driven.LLMService,
	prompts driven.PromptStore,
	settings domain.AppSettings,
) *AnswerService {
	topK := settings.Retrieval.TopK
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	return &AnswerService{
		index:       index,
		embedder:    embedder,
		store:       store,
		llm:         llm,
		prompts:     prompts,
		topK:        topK,
		temperature: settings.LLM.Temperature,
	}
}

// Answer embeds the question, retrieves the k most similar chunks and
// generates a grounded answer citing them. A k of zero or less uses the
// configured default.
func (s *AnswerService) Answer(ctx context.Context, question string, k int) (domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, fmt.Errorf("empty question: %w", domain.ErrInvalidInput)
	}
	if k <= 0 {
		k = s.topK
	}

	logger.Section("Answer")
	logger.Debug("Question: %q (top %d)", question, k)

	// The index must be ready before retrieval. Ensure is memoized, so
	// this is a cheap lookup after the first question.
	if _, err := s.index.Ensure(ctx); err != nil {
		return domain.Answer{}, err
	}

	// 1. EMBED the question
	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return domain.Answer{}, domain.NewAnswerError(domain.StageEmbed, err)
	}
	logger.Debug("Question embedding: %d dimensions", len(vector))

	// 2. RETRIEVE the most similar chunks
	matches, err := s.store.Search(ctx, vector, k)
	if err != nil {
		return domain.Answer{}, domain.NewAnswerError(domain.StageRetrieve, err)
	}
	logger.Debug("Retrieved %d chunk(s)", len(matches))

	if len(matches) == 0 {
		logger.Info("No relevant chunks found, skipping generation")
		return domain.Answer{Text: noMatchAnswer}, nil
	}

	// 3. GENERATE the grounded answer
	prompt, err := s.buildPrompt(question, matches)
	if err != nil {
		return domain.Answer{}, domain.NewAnswerError(domain.StageGenerate, err)
	}

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: s.temperature})
	if err != nil {
		return domain.Answer{}, domain.NewAnswerError(domain.StageGenerate, err)
	}
	logger.Info("Answered with %d cited chunk(s)", len(matches))

	return domain.Answer{
		Text:    strings.TrimSpace(text),
		Sources: matches,
	}, nil
}

// buildPrompt renders the answer template with the retrieved chunks as
// numbered context blocks, similarity-descending.
func (s *AnswerService) buildPrompt(question string, matches []domain.ChunkMatch) (string, error) {
	template, err := s.prompts.Load(driven.PromptAnswer)
	if err != nil {
		return "", fmt.Errorf("load answer prompt: %w", err)
	}

	var sb strings.Builder
	for i, match := range matches {
		fmt.Fprintf(&sb, "[%d] From %s, page %d:\n%s\n\n",
			i+1, match.Chunk.SourceBase(), match.Chunk.Page, match.Chunk.Content)
	}

	replacer := strings.NewReplacer(
		"{{context}}", strings.TrimSpace(sb.String()),
		"{{question}}", question,
	)
	return replacer.Replace(template), nil
}
