package library

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

// MockLibraryService implements driving.LibraryService for testing.
type MockLibraryService struct {
	ManualsFunc func(ctx context.Context) ([]domain.Document, error)
	StatsFunc   func(ctx context.Context) (domain.IndexInfo, error)
}

func (m *MockLibraryService) Manuals(ctx context.Context) ([]domain.Document, error) {
	if m.ManualsFunc != nil {
		return m.ManualsFunc(ctx)
	}
	return []domain.Document{}, nil
}

func (m *MockLibraryService) Stats(ctx context.Context) (domain.IndexInfo, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return domain.IndexInfo{}, nil
}

// Helper function to create test manuals.
func testManuals() []domain.Document {
	ingested := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return []domain.Document{
		{
			ID:         "doc-dishwasher",
			Path:       "/home/user/docs/dishwasher_manual.pdf",
			Title:      "dishwasher manual",
			Pages:      8,
			IngestedAt: ingested,
		},
		{
			ID:         "doc-router",
			Path:       "/home/user/docs/router_manual.pdf",
			Title:      "router manual",
			Pages:      2,
			IngestedAt: ingested,
		},
	}
}

func testStats() domain.IndexInfo {
	return domain.IndexInfo{
		Documents: 2,
		Pages:     10,
		Chunks:    48,
		Path:      "/home/user/.manualqa/index.db",
	}
}

func TestNewView(t *testing.T) {
	mock := &MockLibraryService{}

	view := NewView(nil, nil, mock)

	require.NotNil(t, view)
	assert.False(t, view.Ready())
	assert.False(t, view.Loading())
	assert.Empty(t, view.Manuals())
	assert.Nil(t, view.Stats())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
}

func TestView_WithContext(t *testing.T) {
	view := NewView(nil, nil, nil)
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	result := view.WithContext(ctx)

	assert.Equal(t, view, result)
	assert.Equal(t, ctx, view.ctx)
}

func TestView_Init_LoadsManualsAndStats(t *testing.T) {
	manualsCalled := false
	statsCalled := false
	mock := &MockLibraryService{
		ManualsFunc: func(ctx context.Context) ([]domain.Document, error) {
			manualsCalled = true
			return testManuals(), nil
		},
		StatsFunc: func(ctx context.Context) (domain.IndexInfo, error) {
			statsCalled = true
			return testStats(), nil
		},
	}
	view := NewView(nil, nil, mock)

	cmd := view.Init()

	require.NotNil(t, cmd)
	assert.True(t, view.Loading())

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "expected a batch command")
	for _, c := range batch {
		c()
	}
	assert.True(t, manualsCalled)
	assert.True(t, statsCalled)
}

func TestView_Init_NoService(t *testing.T) {
	view := NewView(nil, nil, nil)

	cmd := view.loadManuals()
	result := cmd()

	loaded, ok := result.(messages.ManualsLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, ErrNoLibraryService)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := tea.WindowSizeMsg{Width: 100, Height: 30}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.Ready())
	assert.Equal(t, 100, view.Width())
	assert.Equal(t, 30, view.Height())
}

func TestView_Update_ManualsLoaded(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.loading = true

	msg := messages.ManualsLoaded{Manuals: testManuals()}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.False(t, view.Loading())
	assert.Len(t, view.Manuals(), 2)
	assert.NoError(t, view.Err())
}

func TestView_Update_ManualsLoaded_WithError(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.loading = true

	msg := messages.ManualsLoaded{Err: errors.New("index not readable")}
	view.Update(msg)

	assert.False(t, view.Loading())
	assert.Error(t, view.Err())
	assert.Empty(t, view.Manuals())
}

func TestView_Update_StatsLoaded(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)

	msg := messages.StatsLoaded{Info: testStats()}
	view.Update(msg)

	require.NotNil(t, view.Stats())
	assert.Equal(t, 48, view.Stats().Chunks)
}

func TestView_Update_StatsLoaded_WithError(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)

	msg := messages.StatsLoaded{Err: errors.New("stats failed")}
	view.Update(msg)

	assert.Nil(t, view.Stats())
	assert.NoError(t, view.Err())
}

func TestView_Update_Navigation(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.ManualsLoaded{Manuals: testManuals()})

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	view.Update(down)
	require.NotNil(t, view.SelectedManual())
	assert.Equal(t, "doc-router", view.SelectedManual().ID)

	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	view.Update(up)
	assert.Equal(t, "doc-dishwasher", view.SelectedManual().ID)
}

func TestView_Update_ArrowKeys(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.ManualsLoaded{Manuals: testManuals()})

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "doc-router", view.SelectedManual().ID)

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "doc-dishwasher", view.SelectedManual().ID)
}

func TestView_Update_KeyR_Reloads(t *testing.T) {
	calls := 0
	mock := &MockLibraryService{
		ManualsFunc: func(ctx context.Context) ([]domain.Document, error) {
			calls++
			return testManuals(), nil
		},
	}
	view := NewView(nil, nil, mock)
	view.SetDimensions(80, 24)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		c()
	}
	assert.Equal(t, 1, calls)
}

func TestView_Update_KeyQ_Quits(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	assert.IsType(t, messages.Quit{}, cmd())
}

func TestView_Update_QuestionMark_OpensHelp(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewHelp, changed.View)
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil, nil)

	output := view.View()

	assert.Contains(t, output, "Initialising")
}

func TestView_View_Empty(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "No manuals indexed yet.")
}

func TestView_View_Loading(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.loading = true

	output := view.View()

	assert.Contains(t, output, "Loading manuals...")
}

func TestView_View_ListsManualsAndStats(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(120, 40)
	view.Update(messages.ManualsLoaded{Manuals: testManuals()})
	view.Update(messages.StatsLoaded{Info: testStats()})

	output := view.View()

	assert.Contains(t, output, "Manual Library")
	assert.Contains(t, output, "dishwasher manual")
	assert.Contains(t, output, "router manual")
	assert.Contains(t, output, "2 manual(s), 10 pages, 48 chunks")
	assert.Contains(t, output, "Database: /home/user/.manualqa/index.db")
}

func TestView_View_ShowsError(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.ManualsLoaded{Err: errors.New("index not readable")})

	output := view.View()

	assert.Contains(t, output, "index not readable")
}
