package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gpterm/gpterm"
	"github.com/gpterm/gpterm/markdown"
)

var _ MessageBlock = (*AssistantTextBlock)(nil)

// AssistantTextBlock shows a reply as it streams in. While streaming the
// raw text is word-wrapped as typed; once finished the whole reply is
// rendered as markdown, cached per width.
type AssistantTextBlock struct {
	content  strings.Builder
	theme    gpterm.Theme
	finished bool

	renderedByWidth map[int]string
}

// NewAssistantTextBlock creates a new block for streaming assistant text.
func NewAssistantTextBlock(theme gpterm.Theme) *AssistantTextBlock {
	return &AssistantTextBlock{
		theme:           theme,
		renderedByWidth: make(map[int]string),
	}
}

// Append adds streamed characters. It is a no-op once the block is finished.
func (b *AssistantTextBlock) Append(text string) {
	if b.finished {
		return
	}
	b.content.WriteString(text)
}

// Finish stops streaming and switches the block to markdown rendering.
func (b *AssistantTextBlock) Finish() {
	b.finished = true
}

// Finished reports whether Finish has been called.
func (b *AssistantTextBlock) Finished() bool { return b.finished }

// Text returns the raw reply text.
func (b *AssistantTextBlock) Text() string { return b.content.String() }

func (b *AssistantTextBlock) View(width int) string {
	raw := sanitize(b.content.String())
	if raw == "" {
		return ""
	}
	if !b.finished {
		if width <= 0 {
			return raw
		}
		return lipgloss.NewStyle().Width(width).Render(raw)
	}
	if cached, ok := b.renderedByWidth[width]; ok {
		return cached
	}
	rendered := strings.Trim(markdown.Render(raw, width, b.theme), "\n")
	b.renderedByWidth[width] = rendered
	return rendered
}
