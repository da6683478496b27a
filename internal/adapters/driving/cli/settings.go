package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change configuration: documents directory, chunking,
models, and retrieval depth.

Settings persist to a TOML file. The Google API key is read from the
GOOGLE_API_KEY environment variable (or a .env file next to the binary)
and is never written to the settings file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a single setting",
	Long: `Changes one setting by its dotted key, for example:

  manualqa settings set docs.dir ./manuals
  manualqa settings set chunker.size 800
  manualqa settings set llm.temperature 0.2
  manualqa settings set retrieval.top_k 5

Changes to chunking or the embedding model only affect the next
'manualqa index --rebuild'.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Documents]")
	cmd.Printf("  Directory: %s\n", settings.Docs.Dir)
	cmd.Println()

	cmd.Println("[Index]")
	path := settings.Index.Path
	if path == "" {
		path = "(default location)"
	}
	cmd.Printf("  Path: %s\n", path)
	cmd.Println()

	cmd.Println("[Chunker]")
	cmd.Printf("  Size: %d\n", settings.Chunker.Size)
	cmd.Printf("  Overlap: %d\n", settings.Chunker.Overlap)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	cmd.Printf("  Temperature: %.1f\n", settings.LLM.Temperature)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Println()

	if key := os.Getenv(domain.EnvGoogleAPIKey); key != "" {
		cmd.Printf("%s: %s\n", domain.EnvGoogleAPIKey, maskAPIKey(key))
	} else {
		cmd.Printf("%s: (not set)\n", domain.EnvGoogleAPIKey)
	}
	cmd.Println()
	cmd.Printf("Settings file: %s\n", settingsService.Path())

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s to %s\n", key, value)
	return nil
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
