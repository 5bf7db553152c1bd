// Package markdown renders assistant replies as ANSI-styled terminal text
// using goldmark for parsing and lipgloss for styling.
package markdown

import "github.com/gpterm/gpterm"

const defaultWidth = 80

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, quotes and list items are word-wrapped to width. Code blocks
// keep their lines as written.
func Render(source string, width int, theme gpterm.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	return newRenderer(theme).render([]byte(source), width)
}
