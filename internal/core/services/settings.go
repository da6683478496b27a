package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDocsDir        = "docs.dir"
	keyIndexPath      = "index.path"
	keyChunkerSize    = "chunker.size"
	keyChunkerOverlap = "chunker.overlap"
	keyEmbeddingModel = "embedding.model"
	keyLLMModel       = "llm.model"
	keyLLMTemperature = "llm.temperature"
	keyRetrievalTopK  = "retrieval.top_k"
)

// settingKeys lists every key Set accepts, for error messages.
var settingKeys = []string{
	keyDocsDir,
	keyIndexPath,
	keyChunkerSize,
	keyChunkerOverlap,
	keyEmbeddingModel,
	keyLLMModel,
	keyLLMTemperature,
	keyRetrievalTopK,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, merging stored values over
// the built-in defaults. Stored settings that fail validation are
// reported rather than silently repaired.
func (s *SettingsService) Get() (domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := domain.AppSettings{
		Docs: domain.DocsSettings{
			Dir: s.getString(keyDocsDir, defaults.Docs.Dir),
		},
		Index: domain.IndexSettings{
			Path: s.getString(keyIndexPath, defaults.Index.Path),
		},
		Chunker: domain.ChunkerSettings{
			Size:    s.getInt(keyChunkerSize, defaults.Chunker.Size),
			Overlap: s.getInt(keyChunkerOverlap, defaults.Chunker.Overlap),
		},
		Embedding: domain.EmbeddingSettings{
			Model: s.getString(keyEmbeddingModel, defaults.Embedding.Model),
		},
		LLM: domain.LLMSettings{
			Model:       s.getString(keyLLMModel, defaults.LLM.Model),
			Temperature: s.getFloat(keyLLMTemperature, defaults.LLM.Temperature),
		},
		Retrieval: domain.RetrievalSettings{
			TopK: s.getInt(keyRetrievalTopK, defaults.Retrieval.TopK),
		},
	}

	if err := settings.Validate(); err != nil {
		return domain.AppSettings{}, fmt.Errorf("stored settings: %w", err)
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keyDocsDir, settings.Docs.Dir); err != nil {
		return fmt.Errorf("save docs dir: %w", err)
	}
	if err := s.configStore.Set(keyIndexPath, settings.Index.Path); err != nil {
		return fmt.Errorf("save index path: %w", err)
	}
	if err := s.configStore.Set(keyChunkerSize, settings.Chunker.Size); err != nil {
		return fmt.Errorf("save chunker size: %w", err)
	}
	if err := s.configStore.Set(keyChunkerOverlap, settings.Chunker.Overlap); err != nil {
		return fmt.Errorf("save chunker overlap: %w", err)
	}
	if err := s.configStore.Set(keyEmbeddingModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMTemperature, float64(settings.LLM.Temperature)); err != nil {
		return fmt.Errorf("save llm temperature: %w", err)
	}
	if err := s.configStore.Set(keyRetrievalTopK, settings.Retrieval.TopK); err != nil {
		return fmt.Errorf("save retrieval top_k: %w", err)
	}

	return nil
}

// Set parses and stores a single setting by key. The new value is
// validated against the rest of the settings before it is persisted.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyDocsDir:
		settings.Docs.Dir = value
	case keyIndexPath:
		settings.Index.Path = value
	case keyChunkerSize:
		n, err := s.parseInt(key, value)
		if err != nil {
			return err
		}
		settings.Chunker.Size = n
	case keyChunkerOverlap:
		n, err := s.parseInt(key, value)
		if err != nil {
			return err
		}
		settings.Chunker.Overlap = n
	case keyEmbeddingModel:
		settings.Embedding.Model = value
	case keyLLMModel:
		settings.LLM.Model = value
	case keyLLMTemperature:
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return fmt.Errorf("%s expects a number, got %q: %w", key, value, domain.ErrInvalidInput)
		}
		settings.LLM.Temperature = float32(f)
	case keyRetrievalTopK:
		n, err := s.parseInt(key, value)
		if err != nil {
			return err
		}
		settings.Retrieval.TopK = n
	default:
		return fmt.Errorf("unknown setting %q (known keys: %s): %w",
			key, strings.Join(settingKeys, ", "), domain.ErrInvalidInput)
	}

	return s.Save(settings)
}

// Defaults returns the built-in default settings.
func (s *SettingsService) Defaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns the location of the settings file.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s expects an integer, got %q: %w", key, value, domain.ErrInvalidInput)
	}
	return n, nil
}

// Helper methods for reading config with defaults. Existence checks
// matter here: zero is a legal stored value for overlap and temperature.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float32) float32 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return float32(s.configStore.GetFloat(key))
}
