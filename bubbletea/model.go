package bubbletea

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gpterm/gpterm"
	"github.com/mattn/go-runewidth"
)

var _ tea.Model = Model{}

const (
	promptGlyph   = "〉"
	maxInputLines = 6
	exitHint      = "Press Ctrl+C again to exit"
	idleHint      = "Enter to send, Ctrl+C to quit"
)

// Model is the Bubble Tea model for the gpterm TUI.
type Model struct {
	// Input is the multi-line prompt. Exported for test access.
	Input textarea.Model
	// Viewport is the scrollable conversation area. Exported for test access.
	Viewport viewport.Model
	// Spinner animates the status line while a turn is running.
	Spinner spinner.Model

	turn      TurnFunc
	gate      *gpterm.Gate
	theme     gpterm.Theme
	styles    Styles
	modelName string

	blocks []MessageBlock
	active *AssistantTextBlock // reply of the running turn

	running    bool
	stopping   bool // gate stopped, waiting for the turn to wind down
	confirming bool // one interrupt seen at an idle prompt
	cancel     context.CancelFunc
	charCh     chan string
	doneCh     chan TurnDoneMsg
	err        error
	ready      bool
	width      int
	height     int
}

// Option configures a Model.
type Option func(*Model)

// WithHistory renders an existing transcript before the first prompt.
// System messages are not shown.
func WithHistory(msgs []gpterm.Message) Option {
	return func(m *Model) {
		for _, msg := range msgs {
			switch msg.Role {
			case gpterm.RoleUser:
				m.blocks = append(m.blocks, NewUserMessageBlock(msg.Content, m.styles))
			case gpterm.RoleAssistant:
				b := NewAssistantTextBlock(m.theme)
				b.Append(msg.Content)
				b.Finish()
				m.blocks = append(m.blocks, b)
			}
		}
	}
}

// WithIntro shows lines at the top of the conversation. The first line is
// drawn as a title.
func WithIntro(lines ...string) Option {
	return func(m *Model) {
		for i, line := range lines {
			style := m.styles.Muted
			if i == 0 {
				style = m.styles.Success
			}
			m.blocks = append(m.blocks, NewNoticeBlock(line, style))
		}
	}
}

// WithModelName shows the model in the status line.
func WithModelName(name string) Option {
	return func(m *Model) { m.modelName = name }
}

// New creates a TUI Model. Each submitted prompt runs turn; Ctrl+C during
// a turn stops gate, which must be the gate that turn observes.
func New(turn TurnFunc, gate *gpterm.Gate, theme gpterm.Theme, opts ...Option) Model {
	if gate == nil {
		gate = gpterm.NewGate()
	}

	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetPromptFunc(runewidth.StringWidth(promptGlyph), func(lineIdx int) string {
		if lineIdx == 0 {
			return promptGlyph
		}
		return strings.Repeat(" ", runewidth.StringWidth(promptGlyph))
	})
	ta.SetHeight(1)
	ta.Focus()

	m := Model{
		Input:   ta,
		Spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		turn:    turn,
		gate:    gate,
		theme:   theme,
		styles:  NewStyles(theme),
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Running returns whether a turn is in flight.
func (m Model) Running() bool { return m.running }

// Err returns the fatal turn error that ended the program, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case CharMsg:
		if m.active != nil {
			m.active.Append(msg.Char)
		}
		m = m.refresh()
		if m.charCh != nil {
			return m, listenForChar(m.charCh, m.doneCh)
		}
		return m, nil

	case TurnDoneMsg:
		return m.finishTurn(msg)
	}

	// Viewport always receives remaining messages for mouse scrolling.
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	if !m.ready {
		m.Viewport = viewport.New(msg.Width, 1)
		m.ready = true
	}
	m.Input.SetWidth(msg.Width)
	m = m.layout()
	return m.refresh()
}

// layout sizes the viewport around the status line and the input.
func (m Model) layout() Model {
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := m.height - m.Input.Height() - statusHeight - borderHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.Viewport.Width = m.width
	m.Viewport.Height = vpHeight
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.interrupt()

	case tea.KeyCtrlD:
		if m.running || m.Input.Value() == "" {
			return m.interrupt()
		}

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		m.confirming = false
		value := m.Input.Value()
		if gpterm.IncompleteBrackets(value) {
			return m.updateInput(msg)
		}
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		return m.submitInput(value)
	}

	if m.running {
		return m, nil
	}
	m.confirming = false

	// Only non-character keys scroll, so 'j'/'k' still type.
	var cmds []tea.Cmd
	if msg.Type != tea.KeyRunes {
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	updated, cmd := m.updateInput(msg)
	cmds = append(cmds, cmd)
	return updated, tea.Batch(cmds...)
}

// updateInput forwards msg to the textarea and grows it with its content.
func (m Model) updateInput(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	h := min(max(m.Input.LineCount(), 1), maxInputLines)
	if h != m.Input.Height() {
		m.Input.SetHeight(h)
		m = m.layout()
	}
	return m, cmd
}

// interrupt handles Ctrl+C. During a turn the first press stops the gate
// and a second quits. At an idle prompt the first press asks for
// confirmation and a second quits.
func (m Model) interrupt() (tea.Model, tea.Cmd) {
	if m.running {
		if m.gate.Stop() {
			return m.quit()
		}
		m.stopping = true
		return m, nil
	}
	if m.confirming {
		return m.quit()
	}
	m.confirming = true
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.gate.Stop()
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	// Reset here, on the update loop, so a Ctrl+C that arrives before the
	// turn goroutine runs is not wiped out.
	m.gate.Reset()
	m.Input.Reset()
	m.Input.SetHeight(1)
	m.Input.Blur()
	m = m.layout()

	m.blocks = append(m.blocks, NewUserMessageBlock(text, m.styles))
	m.active = NewAssistantTextBlock(m.theme)
	m.blocks = append(m.blocks, m.active)

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.charCh = make(chan string, 256)
	m.doneCh = make(chan TurnDoneMsg, 1)
	m.running = true
	m.stopping = false
	m = m.refresh()

	return m, tea.Batch(
		startTurn(m.turn, ctx, text, m.charCh, m.doneCh),
		listenForChar(m.charCh, m.doneCh),
		m.Spinner.Tick,
	)
}

func (m Model) finishTurn(msg TurnDoneMsg) (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	m.running = false
	m.stopping = false
	m.cancel = nil
	m.charCh = nil
	m.doneCh = nil
	if m.active != nil {
		m.active.Finish()
		m.active = nil
	}

	switch {
	case msg.Err != nil && errors.Is(msg.Err, context.Canceled):
	case msg.Err != nil:
		m.blocks = append(m.blocks, NewErrorBlock(msg.Err, m.styles))
		if gpterm.IsFatal(msg.Err) {
			m.err = msg.Err
			m = m.refresh()
			return m, tea.Quit
		}
	case msg.Result.State == gpterm.TurnCancelled:
		m.blocks = append(m.blocks, NewNoticeBlock("Cancelled", m.styles.Warning))
	}

	m = m.refresh()
	return m, m.Input.Focus()
}

// refresh re-renders the conversation and keeps it scrolled to the end.
func (m Model) refresh() Model {
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) renderContent() string {
	var b strings.Builder
	var prev MessageBlock
	for _, block := range m.blocks {
		view := block.View(m.Viewport.Width)
		if view == "" {
			continue
		}
		if prev != nil {
			b.WriteString(blockSeparator(prev, block))
		}
		b.WriteString(view)
		prev = block
	}
	return b.String()
}

func (m Model) statusLine() string {
	style := m.styles.Muted
	var text string
	switch {
	case m.err != nil:
		style = m.styles.Error
		text, _, _ = strings.Cut(errorText(m.err), "\n")
	case m.stopping:
		style = m.styles.Warning
		text = "Cancelling..."
	case m.running:
		text = m.Spinner.View() + " Generating..."
	case m.confirming:
		style = m.styles.Warning
		text = exitHint
	default:
		text = idleHint
	}
	if m.modelName != "" {
		text = m.modelName + " · " + text
	}
	if m.width > 0 {
		text = runewidth.Truncate(text, m.width, "…")
	}
	return style.Render(text)
}

// startTurn runs the turn in a goroutine and signals completion. The sink
// hands characters to the update loop one at a time.
func startTurn(turn TurnFunc, ctx context.Context, input string, charCh chan<- string, doneCh chan<- TurnDoneMsg) tea.Cmd {
	return func() tea.Msg {
		sink := gpterm.SinkFunc(func(char string) error {
			select {
			case charCh <- char:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		res, err := turn(ctx, input, sink)
		close(charCh)
		doneCh <- TurnDoneMsg{Result: res, Err: err}
		return nil
	}
}

// listenForChar waits for the next character from the channel.
// When the channel closes, it reads the outcome from doneCh.
func listenForChar(ch <-chan string, doneCh <-chan TurnDoneMsg) tea.Cmd {
	return func() tea.Msg {
		char, ok := <-ch
		if !ok {
			return <-doneCh
		}
		return CharMsg{Char: char}
	}
}
