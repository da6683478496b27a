package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingAnswerService,
		ErrMissingIndexService,
		ErrMissingLibraryService,
		ErrInvalidPorts,
	}

	// Ensure all errors are unique
	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingAnswerService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingAnswerService.Error(), "answer service")
}

func TestErrMissingIndexService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingIndexService.Error(), "index service")
}

func TestErrMissingLibraryService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingLibraryService.Error(), "library service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
