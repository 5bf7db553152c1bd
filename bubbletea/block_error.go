package bubbletea

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/gpterm/gpterm"
)

var (
	_ MessageBlock = (*ErrorBlock)(nil)
	_ MessageBlock = (*NoticeBlock)(nil)
)

// ErrorBlock renders a failed turn. Server errors show their kind the way
// the plain frontend prints them.
type ErrorBlock struct {
	err    error
	styles Styles
}

// NewErrorBlock creates an ErrorBlock.
func NewErrorBlock(err error, styles Styles) *ErrorBlock {
	return &ErrorBlock{err: err, styles: styles}
}

func (b *ErrorBlock) View(width int) string {
	content := b.styles.Error.Render(sanitize(errorText(b.err)))
	if width <= 0 {
		return content
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}

func errorText(err error) string {
	var serverErr *gpterm.ServerError
	var decodeErr *gpterm.DecodeError
	switch {
	case errors.As(err, &serverErr):
		if serverErr.Message != "" {
			return serverErr.Kind + ": " + serverErr.Message
		}
		return serverErr.Kind
	case errors.As(err, &decodeErr):
		return fmt.Sprintf("Error reading JSON: %v\nResponse: %s", decodeErr.Cause, decodeErr.Raw)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// NoticeBlock renders a one-line status note such as a cancellation.
type NoticeBlock struct {
	text  string
	style lipgloss.Style
}

// NewNoticeBlock creates a NoticeBlock drawn in style.
func NewNoticeBlock(text string, style lipgloss.Style) *NoticeBlock {
	return &NoticeBlock{text: text, style: style}
}

func (b *NoticeBlock) View(width int) string {
	content := b.style.Render(b.text)
	if width <= 0 {
		return content
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}
