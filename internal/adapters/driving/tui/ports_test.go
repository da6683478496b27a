package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

// MockAnswerService implements driving.AnswerService for testing.
type MockAnswerService struct {
	AnswerFunc func(ctx context.Context, question string, k int) (domain.Answer, error)
}

func (m *MockAnswerService) Answer(ctx context.Context, question string, k int) (domain.Answer, error) {
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, question, k)
	}
	return domain.Answer{}, nil
}

// MockIndexService implements driving.IndexService for testing.
type MockIndexService struct {
	EnsureFunc  func(ctx context.Context) (domain.IndexInfo, error)
	RebuildFunc func(ctx context.Context) (domain.IndexInfo, error)
}

func (m *MockIndexService) Ensure(ctx context.Context) (domain.IndexInfo, error) {
	if m.EnsureFunc != nil {
		return m.EnsureFunc(ctx)
	}
	return domain.IndexInfo{}, nil
}

func (m *MockIndexService) Rebuild(ctx context.Context) (domain.IndexInfo, error) {
	if m.RebuildFunc != nil {
		return m.RebuildFunc(ctx)
	}
	return domain.IndexInfo{}, nil
}

// MockLibraryService implements driving.LibraryService for testing.
type MockLibraryService struct {
	ManualsFunc func(ctx context.Context) ([]domain.Document, error)
	StatsFunc   func(ctx context.Context) (domain.IndexInfo, error)
}

func (m *MockLibraryService) Manuals(ctx context.Context) ([]domain.Document, error) {
	if m.ManualsFunc != nil {
		return m.ManualsFunc(ctx)
	}
	return nil, nil
}

func (m *MockLibraryService) Stats(ctx context.Context) (domain.IndexInfo, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return domain.IndexInfo{}, nil
}

func TestNewPorts(t *testing.T) {
	answer := &MockAnswerService{}
	index := &MockIndexService{}
	library := &MockLibraryService{}

	ports := NewPorts(answer, index, library)

	require.NotNil(t, ports)
	assert.Equal(t, answer, ports.Answer)
	assert.Equal(t, index, ports.Index)
	assert.Equal(t, library, ports.Library)
}

func TestPorts_Validate_AllSet(t *testing.T) {
	ports := &Ports{
		Answer:  &MockAnswerService{},
		Index:   &MockIndexService{},
		Library: &MockLibraryService{},
	}

	err := ports.Validate()

	assert.NoError(t, err)
}

func TestPorts_Validate_MissingAnswer(t *testing.T) {
	ports := &Ports{
		Answer:  nil,
		Index:   &MockIndexService{},
		Library: &MockLibraryService{},
	}

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingAnswerService)
}

func TestPorts_Validate_MissingIndex(t *testing.T) {
	ports := &Ports{
		Answer:  &MockAnswerService{},
		Index:   nil,
		Library: &MockLibraryService{},
	}

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingIndexService)
}

func TestPorts_Validate_MissingLibrary(t *testing.T) {
	ports := &Ports{
		Answer:  &MockAnswerService{},
		Index:   &MockIndexService{},
		Library: nil,
	}

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingLibraryService)
}
