package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manualqa-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockIndexService implements driving.IndexService for testing.
type mockIndexService struct {
	info  domain.IndexInfo
	err   error
	calls int
}

func (m *mockIndexService) Ensure(_ context.Context) (domain.IndexInfo, error) {
	m.calls++
	return m.info, m.err
}

func (m *mockIndexService) Rebuild(_ context.Context) (domain.IndexInfo, error) {
	return m.info, m.err
}

// mockLLMService implements driven.LLMService for testing. It records
// the last prompt and options it was called with.
type mockLLMService struct {
	response string
	err      error
	prompt   string
	opts     driven.GenerateOptions
	calls    int
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.calls++
	m.prompt = prompt
	m.opts = opts
	if m.err != nil {
		return "", m.err
	}
	if m.response != "" {
		return m.response, nil
	}
	return "Plug it in, then press the power button.", nil
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Close() error {
	return nil
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	template string
	err      error
}

func (m *mockPromptStore) Load(_ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.template != "" {
		return m.template, nil
	}
	return "Context:\n{{context}}\n\nQuestion: {{question}}\nAnswer:", nil
}

func (m *mockPromptStore) Reload() {}

// --- Test helpers ---

// answerChunkFixtures returns four embedded chunks with distinct
// similarities to the mock question vector {0.1, 0.2, 0.3}.
func answerChunkFixtures() []domain.Chunk {
	return []domain.Chunk{
		{
			ID: "c-power", DocumentID: "doc-router", Position: 1,
			Content:    "Press the power button for three seconds.",
			SourceFile: "/docs/router_manual.pdf", Page: 2,
			Embedding: []float32{0.1, 0.2, 0.3},
		},
		{
			ID: "c-setup", DocumentID: "doc-router", Position: 0,
			Content:    "Connect the router to your modem first.",
			SourceFile: "/docs/router_manual.pdf", Page: 1,
			Embedding: []float32{0, 0, 1},
		},
		{
			ID: "c-reset", DocumentID: "doc-router", Position: 2,
			Content:    "Hold reset to restore factory settings.",
			SourceFile: "/docs/router_manual.pdf", Page: 3,
			Embedding: []float32{0, 1, 0},
		},
		{
			ID: "c-rinse", DocumentID: "doc-dishwasher", Position: 0,
			Content:    "Add rinse aid before the first wash.",
			SourceFile: "/docs/dishwasher_manual.pdf", Page: 1,
			Embedding: []float32{1, 0, 0},
		},
	}
}

func setupAnswerService(t *testing.T, store driven.VectorStore) (*AnswerService, *mockIndexService, *mockEmbeddingService, *mockLLMService) {
	t.Helper()
	index := &mockIndexService{}
	embedder := &mockEmbeddingService{}
	llm := &mockLLMService{}
	service := NewAnswerService(index, embedder, store, llm, &mockPromptStore{}, domain.DefaultAppSettings())
	return service, index, embedder, llm
}

// --- Tests ---

func TestNewAnswerService_DefaultsTopK(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Retrieval.TopK = 0

	service := NewAnswerService(&mockIndexService{}, &mockEmbeddingService{}, memory.NewVectorStore(), &mockLLMService{}, &mockPromptStore{}, settings)

	assert.Equal(t, domain.DefaultTopK, service.topK)
}

func TestAnswerService_Answer_HappyPath(t *testing.T) {
	store := memory.NewVectorStore()
	ctx := context.Background()
	require.NoError(t, store.SaveChunks(ctx, answerChunkFixtures()))

	service, index, _, llm := setupAnswerService(t, store)

	answer, err := service.Answer(ctx, "How do I turn the router on?", 3)

	require.NoError(t, err)
	assert.Equal(t, "Plug it in, then press the power button.", answer.Text)
	assert.Equal(t, 1, index.calls)
	assert.Equal(t, 1, llm.calls)

	// Sources are the retrieved chunks, similarity-descending, at most k.
	require.Len(t, answer.Sources, 3)
	assert.Equal(t, "c-power", answer.Sources[0].Chunk.ID)
	assert.Equal(t, "c-setup", answer.Sources[1].Chunk.ID)
	assert.Equal(t, "c-reset", answer.Sources[2].Chunk.ID)
	assert.GreaterOrEqual(t, answer.Sources[0].Score, answer.Sources[1].Score)
	assert.GreaterOrEqual(t, answer.Sources[1].Score, answer.Sources[2].Score)

	// The prompt cites each chunk with its source file and page.
	assert.Contains(t, llm.prompt, "How do I turn the router on?")
	assert.Contains(t, llm.prompt, "[1] From router_manual.pdf, page 2:")
	assert.Contains(t, llm.prompt, "Press the power button for three seconds.")
	assert.Contains(t, llm.prompt, "[2] From router_manual.pdf, page 1:")
	assert.Contains(t, llm.prompt, "[3] From router_manual.pdf, page 3:")

	assert.Equal(t, domain.DefaultTemperature, llm.opts.Temperature)
}

func TestAnswerService_Answer_DefaultK(t *testing.T) {
	store := memory.NewVectorStore()
	ctx := context.Background()
	require.NoError(t, store.SaveChunks(ctx, answerChunkFixtures()))

	settings := domain.DefaultAppSettings()
	settings.Retrieval.TopK = 2
	service := NewAnswerService(&mockIndexService{}, &mockEmbeddingService{}, store, &mockLLMService{}, &mockPromptStore{}, settings)

	answer, err := service.Answer(ctx, "How do I reset it?", 0)

	require.NoError(t, err)
	assert.Len(t, answer.Sources, 2)
}

func TestAnswerService_Answer_TrimsQuestionAndAnswer(t *testing.T) {
	store := memory.NewVectorStore()
	ctx := context.Background()
	require.NoError(t, store.SaveChunks(ctx, answerChunkFixtures()))

	service, _, _, llm := setupAnswerService(t, store)
	llm.response = "\n  Hold the reset button.  \n"

	answer, err := service.Answer(ctx, "  How do I reset it?  ", 3)

	require.NoError(t, err)
	assert.Equal(t, "Hold the reset button.", answer.Text)
	assert.Contains(t, llm.prompt, "Question: How do I reset it?\n")
}

func TestAnswerService_Answer_EmptyQuestion(t *testing.T) {
	service, index, embedder, llm := setupAnswerService(t, memory.NewVectorStore())

	for _, question := range []string{"", "   \t\n  "} {
		_, err := service.Answer(context.Background(), question, 3)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, 0, index.calls)
	assert.Equal(t, 0, embedder.embedCalls)
	assert.Equal(t, 0, llm.calls)
}

func TestAnswerService_Answer_EnsureFailurePropagates(t *testing.T) {
	service, index, embedder, _ := setupAnswerService(t, memory.NewVectorStore())
	index.err = domain.NewIngestError(domain.StageLoad, errors.New("no documents"))

	_, err := service.Answer(context.Background(), "anything?", 3)

	require.Error(t, err)
	var ingestErr *domain.IngestError
	assert.ErrorAs(t, err, &ingestErr, "index failures keep their ingest kind")
	assert.Equal(t, 0, embedder.embedCalls)
}

func TestAnswerService_Answer_NoMatches(t *testing.T) {
	// Empty store: retrieval succeeds but returns nothing.
	service, _, _, llm := setupAnswerService(t, memory.NewVectorStore())

	answer, err := service.Answer(context.Background(), "Is there a manual for my toaster?", 3)

	require.NoError(t, err)
	assert.Equal(t, noMatchAnswer, answer.Text)
	assert.Empty(t, answer.Sources)
	assert.Equal(t, 0, llm.calls, "no generation without retrieved context")
}

func TestAnswerService_Answer_EmbedError(t *testing.T) {
	service, _, embedder, _ := setupAnswerService(t, memory.NewVectorStore())
	embedder.embedErr = errors.New("quota exhausted")

	_, err := service.Answer(context.Background(), "How do I descale it?", 3)

	require.Error(t, err)
	var answerErr *domain.AnswerError
	require.ErrorAs(t, err, &answerErr)
	assert.Equal(t, domain.StageEmbed, answerErr.Stage)
}

func TestAnswerService_Answer_RetrieveError(t *testing.T) {
	store := &failingVectorStore{
		VectorStore: memory.NewVectorStore(),
		searchErr:   errors.New("index corrupt"),
	}
	service, _, _, llm := setupAnswerService(t, store)

	_, err := service.Answer(context.Background(), "How do I descale it?", 3)

	require.Error(t, err)
	var answerErr *domain.AnswerError
	require.ErrorAs(t, err, &answerErr)
	assert.Equal(t, domain.StageRetrieve, answerErr.Stage)
	assert.Equal(t, 0, llm.calls)
}

func TestAnswerService_Answer_GenerateError(t *testing.T) {
	store := memory.NewVectorStore()
	ctx := context.Background()
	require.NoError(t, store.SaveChunks(ctx, answerChunkFixtures()))

	service, _, _, llm := setupAnswerService(t, store)
	llm.err = errors.New("model overloaded")

	_, err := service.Answer(ctx, "How do I descale it?", 3)

	require.Error(t, err)
	var answerErr *domain.AnswerError
	require.ErrorAs(t, err, &answerErr)
	assert.Equal(t, domain.StageGenerate, answerErr.Stage)
}

func TestAnswerService_Answer_PromptLoadError(t *testing.T) {
	store := memory.NewVectorStore()
	ctx := context.Background()
	require.NoError(t, store.SaveChunks(ctx, answerChunkFixtures()))

	service := NewAnswerService(&mockIndexService{}, &mockEmbeddingService{}, store, &mockLLMService{}, &mockPromptStore{err: errors.New("template missing")}, domain.DefaultAppSettings())

	_, err := service.Answer(ctx, "How do I descale it?", 3)

	require.Error(t, err)
	var answerErr *domain.AnswerError
	require.ErrorAs(t, err, &answerErr)
	assert.Equal(t, domain.StageGenerate, answerErr.Stage)
	assert.Contains(t, err.Error(), "load answer prompt")
}

func TestAnswerService_buildPrompt(t *testing.T) {
	service := &AnswerService{prompts: &mockPromptStore{
		template: "CONTEXT\n{{context}}\nEND\nQ: {{question}}",
	}}

	chunks := answerChunkFixtures()
	matches := []domain.ChunkMatch{
		{Chunk: chunks[0], Score: 0.9},
		{Chunk: chunks[3], Score: 0.5},
	}

	prompt, err := service.buildPrompt("Where does the rinse aid go?", matches)

	require.NoError(t, err)
	assert.Contains(t, prompt, "[1] From router_manual.pdf, page 2:\nPress the power button for three seconds.")
	assert.Contains(t, prompt, "[2] From dishwasher_manual.pdf, page 1:\nAdd rinse aid before the first wash.")
	assert.Contains(t, prompt, "Q: Where does the rinse aid go?")
	assert.NotContains(t, prompt, "{{context}}")
	assert.NotContains(t, prompt, "{{question}}")
}
