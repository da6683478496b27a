package tui

import (
	"fmt"

	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driving"
)

// Ports contains the driving ports (services) used by the TUI.
type Ports struct {
	// Answer runs questions through the answering pipeline.
	Answer driving.AnswerService

	// Index prepares the vector database before the first question.
	Index driving.IndexService

	// Library lists the indexed manuals and index totals.
	Library driving.LibraryService
}

// NewPorts creates a new Ports configuration.
func NewPorts(
	answer driving.AnswerService,
	index driving.IndexService,
	library driving.LibraryService,
) *Ports {
	return &Ports{
		Answer:  answer,
		Index:   index,
		Library: library,
	}
}

// Validate checks that all required services are present.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingAnswerService)
	}
	if p.Index == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingIndexService)
	}
	if p.Library == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingLibraryService)
	}
	return nil
}
