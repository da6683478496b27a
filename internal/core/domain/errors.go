package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDocuments indicates the documents directory contains no
	// parsable PDF files.
	ErrNoDocuments = errors.New("no PDF documents found")
)

// EnvGoogleAPIKey is the environment variable holding the Google AI
// credential used for both embedding and generation.
const EnvGoogleAPIKey = "GOOGLE_API_KEY"

// Pipeline stages used in IngestError and AnswerError.
const (
	StageLoad     = "load"
	StageSplit    = "split"
	StageEmbed    = "embed"
	StagePersist  = "persist"
	StageRetrieve = "retrieve"
	StageGenerate = "generate"
)

// ConfigError reports a missing or invalid configuration value,
// typically the hosted-service credential. It carries the name of
// the offending credential so the top-level handler can render a
// remediation hint.
type ConfigError struct {
	// Credential is the name of the missing or invalid value,
	// e.g. "GOOGLE_API_KEY".
	Credential string

	// Err is the underlying cause, if any.
	Err error
}

// NewConfigError creates a ConfigError for the named credential.
func NewConfigError(credential string, err error) *ConfigError {
	return &ConfigError{Credential: credential, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Credential, e.Err)
	}
	return fmt.Sprintf("configuration error: %s is not set", e.Credential)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Hint returns a user-facing remediation hint.
func (e *ConfigError) Hint() string {
	return fmt.Sprintf("Set %s in your environment or in a .env file next to the binary.", e.Credential)
}

// IngestError reports a fatal failure while building the vector
// index. Bootstrap aborts on the first IngestError; no partial
// index is served.
type IngestError struct {
	// Stage is the pipeline stage that failed: load, split, embed
	// or persist.
	Stage string

	// Err is the underlying cause.
	Err error
}

// NewIngestError wraps err as a fatal ingestion failure at the given stage.
func NewIngestError(stage string, err error) *IngestError {
	return &IngestError{Stage: stage, Err: err}
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingestion failed at %s: %v", e.Stage, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// AnswerError reports a failure while answering a single question.
// It is fatal for that question only; the process remains usable
// for subsequent questions.
type AnswerError struct {
	// Stage is the pipeline stage that failed: embed, retrieve or
	// generate.
	Stage string

	// Err is the underlying cause.
	Err error
}

// NewAnswerError wraps err as a per-question failure at the given stage.
func NewAnswerError(stage string, err error) *AnswerError {
	return &AnswerError{Stage: stage, Err: err}
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("answering failed at %s: %v", e.Stage, e.Err)
}

func (e *AnswerError) Unwrap() error { return e.Err }
