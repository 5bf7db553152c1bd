package bubbletea

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const tabWidth = 4

// sanitize makes reply text safe to lay out inside the viewport. Escape
// sequences from the server would otherwise restyle or move the cursor over
// the rest of the screen. Tabs expand to spaces so width calculations hold,
// and a lone CR overwrites the start of its line as a terminal would.
func sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = sanitizeLine(line)
	}
	return strings.Join(lines, "\n")
}

func sanitizeLine(line string) string {
	var buf []rune
	col := 0
	put := func(r rune) {
		if col < len(buf) {
			buf[col] = r
		} else {
			buf = append(buf, r)
		}
		col++
	}
	for _, r := range line {
		switch {
		case r == '\r':
			col = 0
		case r == '\t':
			for n := tabWidth - col%tabWidth; n > 0; n-- {
				put(' ')
			}
		case r < 0x20 || r == 0x7f:
			// Other control characters have no visible form.
		default:
			put(r)
		}
	}
	return string(buf)
}
