package driving

import "github.com/custodia-labs/manualqa-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings domain.AppSettings) error

	// Set parses and stores a single setting by key (e.g. "chunker.size").
	Set(key, value string) error

	// Defaults returns the built-in default settings.
	Defaults() domain.AppSettings

	// Path returns the location of the settings file.
	Path() string
}
