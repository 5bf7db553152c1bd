package markdown_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/gpterm/gpterm"
	"github.com/gpterm/gpterm/markdown"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	// Force ANSI output so styled elements produce escape codes to assert on.
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	t.Parallel()
	theme := gpterm.DefaultTheme()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", markdown.Render("", 80, theme))
	})

	t.Run("plain paragraph", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "hello world", strings.TrimRight(stripANSI(markdown.Render("hello world", 80, theme)), " "))
	})

	t.Run("heading is styled differently from a paragraph", func(t *testing.T) {
		t.Parallel()
		heading := markdown.Render("# Title", 80, theme)
		paragraph := markdown.Render("Title", 80, theme)
		assert.Contains(t, stripANSI(heading), "Title")
		assert.NotEqual(t, heading, paragraph)
	})

	t.Run("emphasis", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render("*soft* and **loud**", 80, theme)
		assert.Contains(t, stripANSI(out), "soft and loud")
		assert.NotEqual(t, stripANSI(out), out)
	})

	t.Run("fenced code keeps language and lines", func(t *testing.T) {
		t.Parallel()
		src := "```go\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n```"
		out := stripANSI(markdown.Render(src, 20, theme))
		assert.Contains(t, out, "go\n")
		assert.Contains(t, out, "func main() {")
		assert.Contains(t, out, "fmt.Println(\"hi\")", "code is never wrapped")
	})

	t.Run("inline code", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render("run `go test`", 80, theme)
		assert.Contains(t, stripANSI(out), "run go test")
	})

	t.Run("bullet list", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(markdown.Render("- one\n- two", 80, theme))
		assert.Contains(t, out, "• one")
		assert.Contains(t, out, "• two")
	})

	t.Run("ordered list keeps start number", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(markdown.Render("3. third\n4. fourth", 80, theme))
		assert.Contains(t, out, "3. third")
		assert.Contains(t, out, "4. fourth")
	})

	t.Run("nested list is indented", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(markdown.Render("- outer\n  - inner", 80, theme))
		assert.Contains(t, out, "• outer")
		assert.Contains(t, out, "  • inner")
	})

	t.Run("blockquote gutter", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(markdown.Render("> quoted", 80, theme))
		assert.Contains(t, out, "▌ quoted")
	})

	t.Run("link shows text and url", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(markdown.Render("[docs](https://go.dev)", 80, theme))
		assert.Contains(t, out, "docs (https://go.dev)")
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		long := "word1 word2 word3 word4 word5 word6 word7 word8 word9 word10 word11 word12"
		out := stripANSI(markdown.Render(long, 30, theme))
		assert.Greater(t, len(strings.Split(out, "\n")), 1)
		assert.Contains(t, out, "word12")
	})

	t.Run("non-positive width falls back", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, stripANSI(markdown.Render("hi", 0, theme)), "hi")
	})

	t.Run("paragraphs separated by a blank line", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(markdown.Render("first\n\nsecond", 80, theme))
		lines := strings.Split(out, "\n")
		assert.Len(t, lines, 3)
		assert.Equal(t, "", strings.TrimSpace(lines[1]))
	})

	t.Run("no color theme", func(t *testing.T) {
		t.Parallel()
		plain := gpterm.Theme{Prompt: -1, Error: -1, Warning: -1, Success: -1, Muted: -1, CodeBg: -1, Accent: -1}
		assert.Contains(t, stripANSI(markdown.Render("# Title", 80, plain)), "Title")
	})
}
