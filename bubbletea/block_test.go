package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/gpterm/gpterm"
	bt "github.com/gpterm/gpterm/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestAssistantTextBlock_View(t *testing.T) {
	t.Parallel()

	t.Run("empty block renders nothing", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantTextBlock(gpterm.DefaultTheme())
		assert.Empty(t, block.View(80))
	})

	t.Run("streaming text is shown raw and wrapped", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantTextBlock(gpterm.DefaultTheme())
		block.Append("# Title and some words that keep going past the edge")
		view := block.View(20)
		assert.Contains(t, view, "# Title")
		for _, line := range strings.Split(view, "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), 20)
		}
	})

	t.Run("escape sequences from the server are stripped", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantTextBlock(gpterm.DefaultTheme())
		block.Append("\x1b]0;title\x07plain \x1b[2Jtext")
		assert.Equal(t, "plain text", strings.TrimRight(block.View(0), " "))
		assert.Equal(t, "\x1b]0;title\x07plain \x1b[2Jtext", block.Text())
	})

	t.Run("finished text renders as markdown", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantTextBlock(gpterm.DefaultTheme())
		block.Append("# Title\n\n- one\n- two")
		block.Finish()
		view := block.View(80)
		assert.Contains(t, view, "Title")
		assert.NotContains(t, view, "# Title")
		assert.Contains(t, view, "• one")
		assert.True(t, block.Finished())
	})

	t.Run("append after finish is ignored", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantTextBlock(gpterm.DefaultTheme())
		block.Append("done")
		block.Finish()
		block.Append(" late")
		assert.Equal(t, "done", block.Text())
	})

	t.Run("rendering follows width changes", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantTextBlock(gpterm.DefaultTheme())
		block.Append("word1 word2 word3 word4 word5 word6 word7 word8")
		block.Finish()
		narrow := block.View(20)
		wide := block.View(120)
		assert.Greater(t, strings.Count(narrow, "\n"), strings.Count(wide, "\n"))
		assert.Equal(t, narrow, block.View(20))
	})
}

func TestUserMessageBlock_View(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(gpterm.DefaultTheme())

	t.Run("prefixes the prompt glyph", func(t *testing.T) {
		t.Parallel()
		view := bt.NewUserMessageBlock("hello world", styles).View(80)
		assert.True(t, strings.HasPrefix(view, "〉hello world"))
	})

	t.Run("wraps long text to width", func(t *testing.T) {
		t.Parallel()
		long := "short words that keep going and going beyond the viewport width easily"
		view := bt.NewUserMessageBlock(long, styles).View(30)
		assert.Contains(t, view, "easily")
		assert.Greater(t, len(strings.Split(view, "\n")), 1)
	})
}

func TestErrorBlock_View(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(gpterm.DefaultTheme())

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "plain error",
			err:  assert.AnError,
			want: "Error: " + assert.AnError.Error(),
		},
		{
			name: "server error kind only",
			err:  &gpterm.ServerError{Kind: "insufficient_quota"},
			want: "insufficient_quota",
		},
		{
			name: "server error with message",
			err:  &gpterm.ServerError{Kind: "invalid_request_error", Message: "bad"},
			want: "invalid_request_error: bad",
		},
		{
			name: "decode error",
			err:  &gpterm.DecodeError{Raw: `{"x":1}`, Cause: gpterm.ErrSchema},
			want: "Response: {\"x\":1}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, bt.NewErrorBlock(tt.err, styles).View(80), tt.want)
		})
	}
}

func TestBlockSeparator(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(gpterm.DefaultTheme())
	user := bt.NewUserMessageBlock("hi", styles)
	text := bt.NewAssistantTextBlock(gpterm.DefaultTheme())
	notice := bt.NewNoticeBlock("Cancelled", styles.Warning)
	errBlock := bt.NewErrorBlock(assert.AnError, styles)

	assert.Equal(t, "\n\n", bt.BlockSeparator(user, text))
	assert.Equal(t, "\n\n", bt.BlockSeparator(text, user))
	assert.Equal(t, "\n\n", bt.BlockSeparator(text, errBlock))
	assert.Equal(t, "\n", bt.BlockSeparator(text, notice))
	assert.Equal(t, "\n", bt.BlockSeparator(notice, notice))
	assert.Equal(t, "\n\n", bt.BlockSeparator(user, notice))
	assert.Equal(t, "\n\n", bt.BlockSeparator(notice, user))
}

func TestNewStyles(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(gpterm.DefaultTheme())

	assert.Equal(t, lipgloss.Color("4"), styles.Prompt.GetForeground())
	assert.True(t, styles.Prompt.GetBold())
	assert.Equal(t, lipgloss.Color("1"), styles.Error.GetForeground())
	assert.Equal(t, lipgloss.Color("3"), styles.Warning.GetForeground())
	assert.Equal(t, lipgloss.Color("2"), styles.Success.GetForeground())
	assert.Equal(t, lipgloss.Color("8"), styles.Muted.GetForeground())
	assert.True(t, styles.Muted.GetFaint())
	assert.Equal(t, lipgloss.Color("5"), styles.Accent.GetForeground())
}

func TestNewStylesNegativeIndexYieldsNoColor(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(gpterm.Theme{Prompt: -1})

	assert.Equal(t, lipgloss.NoColor{}, styles.Prompt.GetForeground())
}
