// manualqa is a question-answering assistant for a directory of PDF
// manuals. Manuals are chunked, embedded and stored in a local SQLite
// vector index once; questions are answered by the Gemini chat model
// from the most similar chunks, with file and page cited per excerpt.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/manualqa-cli/internal/adapters/driven/config/file"
	embeddinggemini "github.com/custodia-labs/manualqa-cli/internal/adapters/driven/embedding/gemini"
	llmgemini "github.com/custodia-labs/manualqa-cli/internal/adapters/driven/llm/gemini"
	"github.com/custodia-labs/manualqa-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/manualqa-cli/internal/chunker"
	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/services"
	"github.com/custodia-labs/manualqa-cli/internal/loaders/pdf"
	"github.com/custodia-labs/manualqa-cli/internal/logger"
)

// version is set at release time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		var configErr *domain.ConfigError
		if errors.As(err, &configErr) {
			logger.Error("%v\n%s", configErr, configErr.Hint())
		} else {
			logger.Error("%v", err)
		}
		os.Exit(1)
	}
}

// run wires the adapters into the services and hands control to the CLI.
// Everything that can fail before a command runs is surfaced here.
func run() error {
	// A .env next to the binary is a convenience for GOOGLE_API_KEY;
	// a missing file is not an error.
	_ = godotenv.Load()

	ctx := context.Background()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return err
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	indexPath := settings.Index.Path
	if indexPath == "" {
		indexPath, err = sqlite.DefaultPath()
		if err != nil {
			return err
		}
	}

	// Opening the store creates the file, so record beforehand whether
	// an index was already there. That single fact decides load vs ingest.
	_, statErr := os.Stat(indexPath)
	indexExisted := statErr == nil

	store, err := sqlite.NewStore(indexPath)
	if err != nil {
		return err
	}
	defer store.Close()

	// Only the hosted embedding and generation calls need the credential.
	// The adapters construct without it, so version, settings, and docs
	// against an existing index keep working; ask and index surface a
	// ConfigError with the remediation hint on their first hosted call.
	apiKey := os.Getenv(domain.EnvGoogleAPIKey)

	embedder, err := embeddinggemini.NewEmbeddingService(ctx, embeddinggemini.Config{
		APIKey: apiKey,
		Model:  settings.Embedding.Model,
	})
	if err != nil {
		return err
	}
	defer embedder.Close()

	llm, err := llmgemini.NewLLMService(ctx, llmgemini.Config{
		APIKey: apiKey,
		Model:  settings.LLM.Model,
	})
	if err != nil {
		return err
	}
	defer llm.Close()

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return err
	}

	loader := pdf.New(settings.Docs.Dir)
	splitter := chunker.New(
		chunker.WithChunkSize(settings.Chunker.Size),
		chunker.WithOverlap(settings.Chunker.Overlap),
	)

	indexService := services.NewIndexService(loader, splitter, embedder, store, indexExisted)
	answerService := services.NewAnswerService(indexService, embedder, store, llm, prompts, settings)
	libraryService := services.NewLibraryService(store)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Answer:       answerService,
		Index:        indexService,
		Library:      libraryService,
		Settings:     settingsService,
		IndexExisted: indexExisted,
	})
	cli.Execute()

	return nil
}
