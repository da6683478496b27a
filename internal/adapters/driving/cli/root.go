// Package cli implements the command-line surface. Commands are thin
// wrappers over the driving ports; services are injected once from main
// and every error is rendered in a single place.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/manualqa-cli/internal/logger"
)

// version is the build version, overridden at release time via -ldflags.
var version = "dev"

// Services used by the commands, injected from main before Execute.
var (
	answerService   driving.AnswerService
	indexService    driving.IndexService
	libraryService  driving.LibraryService
	settingsService driving.SettingsService

	// indexExisted reports whether the index file was on disk before the
	// vector store opened it. Commands use it to phrase bootstrap progress.
	indexExisted bool
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "manualqa",
	Short: "Ask questions about your PDF manuals",
	Long: `manualqa answers questions about a directory of PDF manuals.

On first use the manuals are split into chunks, embedded with the Google
Gemini embedding model and stored in a local vector database. Questions
are answered by the Gemini chat model from the most relevant chunks, with
the source file and page cited for every excerpt used.

Requires GOOGLE_API_KEY in the environment or in a .env file next to
the binary.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Services bundles everything the commands need from the wiring in main.
type Services struct {
	Answer   driving.AnswerService
	Index    driving.IndexService
	Library  driving.LibraryService
	Settings driving.SettingsService

	// IndexExisted reports whether the index file was already present
	// before the vector store opened it.
	IndexExisted bool
}

// SetServices injects the driving ports. main calls this once after wiring.
func SetServices(s Services) {
	answerService = s.Answer
	indexService = s.Index
	libraryService = s.Library
	settingsService = s.Settings
	indexExisted = s.IndexExisted
}

// SetVersion records the build version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and renders any failure. This is the
// single point where errors become user-facing text.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		renderError(err)
		os.Exit(1)
	}
}

// renderError writes the failure in terms of its kind: configuration
// problems carry a remediation hint, pipeline failures already name
// their stage in the error text.
func renderError(err error) {
	var configErr *domain.ConfigError
	if errors.As(err, &configErr) {
		logger.Error("%v\n%s", configErr, configErr.Hint())
		return
	}
	logger.Error("%v", err)
}
