// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewAsk is the question input and answer view.
	ViewAsk ViewType = iota
	// ViewLibrary lists the indexed manuals.
	ViewLibrary
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewAsk:
		return "ask"
	case ViewLibrary:
		return "library"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IndexReady reports the outcome of preparing the vector index. It is
// sent once at startup, after the index was loaded or built.
type IndexReady struct {
	Info domain.IndexInfo
	Err  error
}

// AnswerCompleted carries the answer to the last question back to the model.
type AnswerCompleted struct {
	Answer domain.Answer
	Err    error
}

// ManualsLoaded carries the list of indexed manuals.
type ManualsLoaded struct {
	Manuals []domain.Document
	Err     error
}

// StatsLoaded carries index totals for the library footer.
type StatsLoaded struct {
	Info domain.IndexInfo
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
