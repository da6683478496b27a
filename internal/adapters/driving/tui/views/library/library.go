// Package library provides the indexed manuals view for the TUI.
package library

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driving"
)

// View is the library view: the indexed manuals and index totals.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	list   *list.ManualList

	libraryService driving.LibraryService
	ctx            context.Context

	width   int
	height  int
	ready   bool
	loading bool
	err     error
	info    *domain.IndexInfo
}

// NewView creates a new library view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	libraryService driving.LibraryService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:         s,
		keymap:         km,
		list:           list.NewManualList(s),
		libraryService: libraryService,
		ctx:            context.Background(),
		width:          80,
		height:         24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the manuals and index stats.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return tea.Batch(v.loadManuals(), v.loadStats())
}

// loadManuals fetches the indexed manuals.
func (v *View) loadManuals() tea.Cmd {
	return func() tea.Msg {
		if v.libraryService == nil {
			return messages.ManualsLoaded{Err: ErrNoLibraryService}
		}

		manuals, err := v.libraryService.Manuals(v.ctx)
		return messages.ManualsLoaded{Manuals: manuals, Err: err}
	}
}

// loadStats fetches the index totals.
func (v *View) loadStats() tea.Cmd {
	return func() tea.Msg {
		if v.libraryService == nil {
			return messages.StatsLoaded{Err: ErrNoLibraryService}
		}

		info, err := v.libraryService.Stats(v.ctx)
		return messages.StatsLoaded{Info: info, Err: err}
	}
}

// Update handles messages for the library view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ManualsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.list.SetManuals(msg.Manuals)
		return v, nil

	case messages.StatsLoaded:
		if msg.Err != nil {
			// Manuals listing already surfaces the error.
			return v, nil
		}
		info := msg.Info
		v.info = &info
		return v, nil

	case messages.ErrorOccurred:
		v.loading = false
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
		return v, nil
	case "j":
		v.list.MoveDown()
		return v, nil
	case "r":
		return v, v.Init()
	case "q":
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	case "?":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	}

	return v, nil
}

// View renders the library view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Manual Library")
	sections = append(sections, header, "")

	switch {
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case v.loading:
		sections = append(sections, v.styles.Muted.Render("Loading manuals..."))
	case v.list.IsEmpty():
		sections = append(sections, v.styles.Muted.Render("No manuals indexed yet."))
	default:
		sections = append(sections, v.list.View())
	}

	if v.info != nil {
		sections = append(sections, "", v.renderStats())
	}

	help := v.styles.Help.Render("[↑/↓] navigate  [r] reload  [tab] ask  [q] quit")
	sections = append(sections, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStats renders the index totals footer.
func (v *View) renderStats() string {
	totals := fmt.Sprintf("%d manual(s), %d pages, %d chunks",
		v.info.Documents, v.info.Pages, v.info.Chunks)
	path := "Database: " + v.info.Path

	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Muted.Render(totals),
		v.styles.Muted.Render(path),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Reserve lines for the header, stats footer, and help line.
	v.list.SetDimensions(width, height-8)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Loading reports whether the manuals are still being fetched.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Manuals returns the loaded manuals.
func (v *View) Manuals() []domain.Document {
	return v.list.Manuals()
}

// SelectedManual returns the currently selected manual, or nil.
func (v *View) SelectedManual() *domain.Document {
	return v.list.SelectedManual()
}

// Stats returns the loaded index totals, or nil before they arrive.
func (v *View) Stats() *domain.IndexInfo {
	return v.info
}
