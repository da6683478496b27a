package tui

import "errors"

var (
	// ErrMissingAnswerService is returned when the answer service is not configured.
	ErrMissingAnswerService = errors.New("tui: answer service is required")

	// ErrMissingIndexService is returned when the index service is not configured.
	ErrMissingIndexService = errors.New("tui: index service is required")

	// ErrMissingLibraryService is returned when the library service is not configured.
	ErrMissingLibraryService = errors.New("tui: library service is required")

	// ErrInvalidPorts is returned when the ports configuration is invalid.
	ErrInvalidPorts = errors.New("tui: invalid ports configuration")
)
