package driving

import (
	"context"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

// AnswerService answers questions about the indexed manuals.
type AnswerService interface {
	// Answer embeds the question, retrieves the k most similar chunks, and
	// generates a grounded answer that cites them. A k of zero or less uses
	// the configured default.
	//
	// Failures are reported as *domain.AnswerError; they affect only this
	// question and leave the service usable for the next one.
	Answer(ctx context.Context, question string, k int) (domain.Answer, error)
}
