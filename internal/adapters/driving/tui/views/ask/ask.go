// Package ask provides the question and answer view for the TUI.
package ask

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/manualqa-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
	"github.com/custodia-labs/manualqa-cli/internal/core/ports/driving"
)

// View is the ask view: question input, answer text, and cited sources.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	statusbar *status.Bar
	spinner   spinner.Model

	answerService driving.AnswerService
	ctx           context.Context

	width        int
	height       int
	ready        bool
	err          error
	focusInput   bool // true = input mode (typing), false = answer mode (scrolling)
	thinking     bool
	answer       *domain.Answer
	answerLines  []string
	scrollOffset int
	showSources  bool
	indexMessage string
}

// NewView creates a new ask view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	answerService driving.AnswerService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Muted

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewQuestionInput(s),
		statusbar:     status.NewBar(s, km),
		spinner:       sp,
		answerService: answerService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		ready:         false,
		focusInput:    true, // Start in input mode
		showSources:   true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.thinking {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.IndexReady:
		v.handleIndexReady(msg)
		return v, nil

	case messages.AnswerCompleted:
		return v, v.handleAnswerCompleted(msg)

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to input component
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Enter in input mode submits the question
	if msg.Type == tea.KeyEnter && v.focusInput {
		question := strings.TrimSpace(v.input.Value())
		if question == "" || v.thinking {
			return v, nil
		}
		v.thinking = true
		v.err = nil
		v.focusInput = false
		v.input.Blur()
		v.statusbar.SetState(status.StateThinking)
		return v, tea.Batch(v.performAsk(question), v.spinner.Tick)
	}

	// Input mode: all keys go to the input
	if v.focusInput {
		v.input, _ = v.input.Update(msg)
		return v, nil
	}

	// Answer mode
	if msg.Type == tea.KeyEsc {
		v.focusInput = true
		return v, v.input.Focus()
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.scrollUp()
		return v, nil
	case tea.KeyDown:
		v.scrollDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.scrollUp()
		return v, nil
	case "j":
		v.scrollDown()
		return v, nil
	case "s":
		v.showSources = !v.showSources
		return v, nil
	case "n":
		v.Reset()
		return v, v.input.Focus()
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

// performAsk runs the question through the answering pipeline.
func (v *View) performAsk(question string) tea.Cmd {
	return func() tea.Msg {
		if v.answerService == nil {
			return messages.AnswerCompleted{Err: ErrNoAnswerService}
		}

		answer, err := v.answerService.Answer(v.ctx, question, 0)
		return messages.AnswerCompleted{Answer: answer, Err: err}
	}
}

// handleIndexReady records the bootstrap outcome in the status bar.
func (v *View) handleIndexReady(msg messages.IndexReady) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.indexMessage = fmt.Sprintf("%d manual(s), %d chunks indexed", msg.Info.Documents, msg.Info.Chunks)

	// Don't clobber the status of an in-flight question.
	if v.thinking {
		return
	}
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(v.indexMessage)
}

// handleAnswerCompleted processes the answering outcome.
func (v *View) handleAnswerCompleted(msg messages.AnswerCompleted) tea.Cmd {
	v.thinking = false

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		// Give the input back so the question can be edited and resubmitted.
		v.focusInput = true
		return v.input.Focus()
	}

	v.err = nil
	answer := msg.Answer
	v.answer = &answer
	v.scrollOffset = 0
	v.wrapAnswer()
	// The answer is on screen: leave typing mode so the review keys
	// (j/k, s, n, q, ?) act on it. Esc or n returns to the input.
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetState(status.StateAnswered)
	v.statusbar.SetSourceCount(len(answer.Sources))
	return nil
}

// wrapAnswer wraps the answer text to fit the view width.
func (v *View) wrapAnswer() {
	if v.answer == nil || v.answer.Text == "" {
		v.answerLines = nil
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	rawLines := strings.Split(v.answer.Text, "\n")
	v.answerLines = make([]string, 0, len(rawLines))

	for _, line := range rawLines {
		if len(line) <= contentWidth {
			v.answerLines = append(v.answerLines, line)
			continue
		}
		for len(line) > contentWidth {
			cut := contentWidth
			// Prefer breaking at a space when one is near the edge.
			if idx := strings.LastIndex(line[:contentWidth], " "); idx > contentWidth/2 {
				cut = idx
			}
			v.answerLines = append(v.answerLines, strings.TrimRight(line[:cut], " "))
			line = strings.TrimLeft(line[cut:], " ")
		}
		if line != "" {
			v.answerLines = append(v.answerLines, line)
		}
	}
}

// visibleLines returns the number of answer lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for header, input, status bar, and padding.
	reserved := 10
	if v.answer != nil && v.showSources {
		reserved += 2 + 2*len(v.answer.Sources)
	}
	available := v.height - reserved
	if available < 3 {
		available = 3
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	maxOffset := len(v.answerLines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

func (v *View) scrollUp() {
	if v.scrollOffset > 0 {
		v.scrollOffset--
	}
}

func (v *View) scrollDown() {
	if v.scrollOffset < v.maxScrollOffset() {
		v.scrollOffset++
	}
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	header := v.styles.Title.Render("ManualQA")
	sections = append(sections, header, "")

	sections = append(sections, v.input.View(), "")

	if v.err != nil && !v.thinking {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	if v.thinking {
		sections = append(sections, v.spinner.View()+v.styles.Muted.Render(" Thinking..."), "")
	}

	if v.answer != nil && !v.thinking {
		sections = append(sections, v.renderAnswer())
		if v.showSources && len(v.answer.Sources) > 0 {
			sections = append(sections, "", v.renderSources())
		}
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderAnswer renders the visible window of the answer text.
func (v *View) renderAnswer() string {
	visible := v.visibleLines()
	lines := make([]string, 0, visible+1)

	for i := v.scrollOffset; i < len(v.answerLines) && i < v.scrollOffset+visible; i++ {
		lines = append(lines, v.styles.Normal.Render(v.answerLines[i]))
	}

	// Scroll indicator
	if len(v.answerLines) > visible {
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			minInt(v.scrollOffset+visible, len(v.answerLines)),
			len(v.answerLines))))
	}

	return strings.Join(lines, "\n")
}

// renderSources renders the cited sources panel.
func (v *View) renderSources() string {
	lines := make([]string, 0, len(v.answer.Sources)*2+1)
	lines = append(lines, v.styles.Subtitle.Render("Sources:"))

	maxExcerpt := v.width - 10
	if maxExcerpt < 20 {
		maxExcerpt = 20
	}

	for i, src := range v.answer.Sources {
		cite := fmt.Sprintf("  [%d] %s, page %d  (%.2f)",
			i+1, src.Chunk.SourceBase(), src.Chunk.Page, src.Score)
		lines = append(lines, v.styles.Normal.Render(cite))

		excerpt := src.Chunk.Excerpt(domain.ExcerptLength)
		if len(excerpt) > maxExcerpt {
			excerpt = excerpt[:maxExcerpt-3] + "..."
		}
		lines = append(lines, v.styles.Muted.Render("      "+excerpt))
	}

	return strings.Join(lines, "\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.wrapAnswer()
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

// Question returns the current question text.
func (v *View) Question() string {
	return v.input.Value()
}

// SetQuestion sets the question text.
func (v *View) SetQuestion(question string) {
	v.input.SetValue(question)
}

// Answer returns the current answer, or nil before the first one.
func (v *View) Answer() *domain.Answer {
	return v.answer
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Thinking reports whether a question is in flight.
func (v *View) Thinking() bool {
	return v.thinking
}

// ShowSources reports whether the sources panel is visible.
func (v *View) ShowSources() bool {
	return v.showSources
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset clears the answer and returns to input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.SetValue("")
	v.answer = nil
	v.answerLines = nil
	v.scrollOffset = 0
	v.thinking = false
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(v.indexMessage)
	v.statusbar.SetSourceCount(0)
}
