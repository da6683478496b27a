// Package tui implements the interactive terminal user interface for ManualQA.
// It is built on the Elm architecture: a single App model receives messages,
// updates state, and renders the active view.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/views/ask"
	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/views/library"
)

// App is the root bubbletea model. It owns the views and routes messages
// between them.
type App struct {
	ports  *Ports
	styles *styles.Styles
	keymap *keymap.KeyMap
	ctx    context.Context

	currentView  messages.ViewType
	previousView messages.ViewType

	askView     *ask.View
	libraryView *library.View

	width  int
	height int
	ready  bool
	err    error
}

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		styles:       s,
		keymap:       km,
		ctx:          context.Background(),
		currentView:  messages.ViewAsk,
		previousView: messages.ViewAsk,
		askView:      ask.NewView(s, km, ports.Answer),
		libraryView:  library.NewView(s, km, ports.Library),
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.askView = a.askView.WithContext(ctx)
	a.libraryView = a.libraryView.WithContext(ctx)
	return a
}

// Init starts the index bootstrap and initialises the ask view.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.askView.Init(), a.ensureIndex())
}

// ensureIndex prepares the vector database in the background. The outcome
// arrives as a messages.IndexReady.
func (a *App) ensureIndex() tea.Cmd {
	return func() tea.Msg {
		info, err := a.ports.Index.Ensure(a.ctx)
		return messages.IndexReady{Info: info, Err: err}
	}
}

// Update handles messages and routes them to the active view.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a.switchView(msg.View)

	case messages.Quit:
		return a, tea.Quit

	case messages.IndexReady:
		// The ask view owns the status bar, so it gets the bootstrap
		// outcome no matter which view is active.
		var cmd tea.Cmd
		a.askView, cmd = a.askView.Update(msg)
		return a, cmd

	case messages.AnswerCompleted:
		var cmd tea.Cmd
		a.askView, cmd = a.askView.Update(msg)
		return a, cmd

	case messages.ManualsLoaded, messages.StatsLoaded:
		var cmd tea.Cmd
		a.libraryView, cmd = a.libraryView.Update(msg)
		return a, cmd
	}

	return a.routeToCurrentView(msg)
}

// handleKeyMsg processes global keys before delegating to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // handling only relevant key types
	case tea.KeyCtrlC:
		return a, tea.Quit

	case tea.KeyTab:
		if a.currentView == messages.ViewAsk {
			return a.switchView(messages.ViewLibrary)
		}
		return a.switchView(messages.ViewAsk)

	case tea.KeyEsc:
		if a.currentView == messages.ViewHelp {
			return a.switchView(a.previousView)
		}
	}

	if a.currentView == messages.ViewHelp {
		if msg.String() == "q" {
			return a, tea.Quit
		}
		return a, nil
	}

	return a.routeToCurrentView(msg)
}

// switchView changes the active view, initialising it if needed.
func (a *App) switchView(view messages.ViewType) (tea.Model, tea.Cmd) {
	if view == a.currentView {
		return a, nil
	}

	a.previousView = a.currentView
	a.currentView = view

	// The library reloads on entry so it reflects a fresh ingestion.
	if view == messages.ViewLibrary {
		return a, a.libraryView.Init()
	}
	return a, nil
}

// routeToCurrentView forwards a message to the active view.
func (a *App) routeToCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewAsk:
		a.askView, cmd = a.askView.Update(msg)
	case messages.ViewLibrary:
		a.libraryView, cmd = a.libraryView.Update(msg)
	case messages.ViewHelp:
		// Static view, nothing to update.
	}

	return a, cmd
}

// View renders the active view.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	switch a.currentView {
	case messages.ViewAsk:
		return a.askView.View()
	case messages.ViewLibrary:
		return a.libraryView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	}

	return ""
}

// viewHelp renders the static help screen.
func (a *App) viewHelp() string {
	title := a.styles.Title.Render("ManualQA Help")

	sections := []string{
		title,
		"",
		a.styles.Subtitle.Render("Ask view"),
		a.styles.Normal.Render("  enter       submit question"),
		a.styles.Normal.Render("  esc         edit the question again"),
		a.styles.Normal.Render("  n           new question"),
		a.styles.Normal.Render("  s           toggle sources"),
		a.styles.Normal.Render("  ↑/k ↓/j     scroll the answer"),
		"",
		a.styles.Subtitle.Render("Library view"),
		a.styles.Normal.Render("  ↑/k ↓/j     navigate manuals"),
		a.styles.Normal.Render("  r           reload"),
		"",
		a.styles.Subtitle.Render("Global"),
		a.styles.Normal.Render("  tab         switch view"),
		a.styles.Normal.Render("  ?           help"),
		a.styles.Normal.Render("  q, ctrl+c   quit"),
		"",
		a.styles.Muted.Render("Press esc to go back."),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Run starts the TUI event loop and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// SetDimensions propagates terminal dimensions to every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.askView.SetDimensions(width, height)
	a.libraryView.SetDimensions(width, height)
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// AskView returns the ask view.
func (a *App) AskView() *ask.View {
	return a.askView
}

// LibraryView returns the library view.
func (a *App) LibraryView() *library.View {
	return a.libraryView
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// Err returns the current error, if any.
func (a *App) Err() error {
	return a.err
}

// Width returns the current width.
func (a *App) Width() int {
	return a.width
}

// Height returns the current height.
func (a *App) Height() int {
	return a.height
}
