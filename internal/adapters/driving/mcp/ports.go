package mcp

import (
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Answer answers questions from the indexed manuals.
	Answer driving.AnswerService

	// Library reports on the indexed manuals.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	// Library is optional; resources degrade to empty listings.
	return nil
}
