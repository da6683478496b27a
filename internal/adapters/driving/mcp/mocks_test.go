package mcp

import (
	"context"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer      domain.Answer
	err         error
	gotQuestion string
	gotK        int
}

func (m *mockAnswerService) Answer(
	_ context.Context,
	question string,
	k int,
) (domain.Answer, error) {
	m.gotQuestion = question
	m.gotK = k
	return m.answer, m.err
}

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	manuals []domain.Document
	info    domain.IndexInfo
	err     error
}

func (m *mockLibraryService) Manuals(_ context.Context) ([]domain.Document, error) {
	return m.manuals, m.err
}

func (m *mockLibraryService) Stats(_ context.Context) (domain.IndexInfo, error) {
	return m.info, m.err
}
