// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

// ManualList displays the indexed manuals in a navigable list.
type ManualList struct {
	manuals  []domain.Document
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewManualList creates a new manual list component.
func NewManualList(s *styles.Styles) *ManualList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ManualList{
		manuals:  nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the manual list.
func (m *ManualList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (m *ManualList) Update(msg tea.Msg) (*ManualList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			m.MoveUp()
		case tea.KeyDown:
			m.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			m.MoveUp()
		case "j":
			m.MoveDown()
		}
	}
	return m, nil
}

// View renders the manual list.
func (m *ManualList) View() string {
	if len(m.manuals) == 0 {
		return m.styles.Muted.Render("No manuals indexed")
	}

	lines := make([]string, 0, len(m.manuals)*2+2)

	header := m.styles.Subtitle.Render(fmt.Sprintf("Manuals (%d)", len(m.manuals)))
	lines = append(lines, header, "")

	// Each manual takes two lines, so halve the available height.
	visibleCount := (m.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if m.selected >= visibleCount {
		start = m.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(m.manuals) {
		end = len(m.manuals)
	}

	for i := start; i < end; i++ {
		lines = append(lines, m.renderManual(i, &m.manuals[i]))
	}

	return strings.Join(lines, "\n")
}

// renderManual formats a single manual with its metadata line.
func (m *ManualList) renderManual(index int, manual *domain.Document) string {
	indicator := "  "
	if index == m.selected {
		indicator = "> "
	}

	title := manual.Title
	if title == "" {
		title = manual.Basename()
	}

	maxTitleLen := m.width - 20
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	pages := fmt.Sprintf("%d page(s)", manual.Pages)

	var titleLine string
	if index == m.selected {
		titleLine = m.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, pages))
	} else {
		titleLine = m.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
			m.styles.Muted.Render(pages)
	}

	meta := fmt.Sprintf("    %s · indexed %s", manual.Basename(), manual.IngestedAt.Format("2006-01-02 15:04"))
	metaLine := m.styles.Muted.Render(meta)

	return titleLine + "\n" + metaLine
}

// SetManuals updates the manual list.
func (m *ManualList) SetManuals(manuals []domain.Document) {
	m.manuals = manuals
	m.selected = 0
}

// Manuals returns the current manuals.
func (m *ManualList) Manuals() []domain.Document {
	return m.manuals
}

// Selected returns the index of the selected manual.
func (m *ManualList) Selected() int {
	return m.selected
}

// SetSelected sets the selected index.
func (m *ManualList) SetSelected(index int) {
	if index >= 0 && index < len(m.manuals) {
		m.selected = index
	}
}

// SelectedManual returns the currently selected manual, or nil if none.
func (m *ManualList) SelectedManual() *domain.Document {
	if len(m.manuals) == 0 || m.selected < 0 || m.selected >= len(m.manuals) {
		return nil
	}
	return &m.manuals[m.selected]
}

// MoveUp moves selection up.
func (m *ManualList) MoveUp() {
	if m.selected > 0 {
		m.selected--
	}
}

// MoveDown moves selection down.
func (m *ManualList) MoveDown() {
	if m.selected < len(m.manuals)-1 {
		m.selected++
	}
}

// SetDimensions sets the component dimensions.
func (m *ManualList) SetDimensions(width, height int) {
	m.width = width
	m.height = height
}

// Width returns the current width.
func (m *ManualList) Width() int {
	return m.width
}

// Height returns the current height.
func (m *ManualList) Height() int {
	return m.height
}

// Count returns the number of manuals.
func (m *ManualList) Count() int {
	return len(m.manuals)
}

// IsEmpty returns whether the list is empty.
func (m *ManualList) IsEmpty() bool {
	return len(m.manuals) == 0
}
