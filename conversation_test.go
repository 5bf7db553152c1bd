package gpterm_test

import (
	"fmt"
	"testing"

	"github.com/gpterm/gpterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exchanges(n int) *gpterm.Transcript {
	var tr gpterm.Transcript
	for i := range n {
		tr.Append(gpterm.RoleUser, fmt.Sprintf("q%d", i))
		tr.Append(gpterm.RoleAssistant, fmt.Sprintf("a%d", i))
	}
	return &tr
}

func TestHistoryPolicy_NoContext(t *testing.T) {
	t.Parallel()
	tr := exchanges(3)

	gpterm.HistoryPolicy{}.Apply(tr)
	assert.Zero(t, tr.Len())
	assert.Nil(t, tr.Messages, "cleared, not just truncated")
}

func TestHistoryPolicy_NoContextKeepsSystem(t *testing.T) {
	t.Parallel()
	tr := &gpterm.Transcript{Messages: []gpterm.Message{{Role: gpterm.RoleSystem, Content: "be brief"}}}
	tr.Messages = append(tr.Messages, exchanges(2).Messages...)

	gpterm.HistoryPolicy{}.Apply(tr)
	assert.Equal(t, []gpterm.Message{{Role: gpterm.RoleSystem, Content: "be brief"}}, tr.Messages)
}

func TestHistoryPolicy_WindowNotExceeded(t *testing.T) {
	t.Parallel()
	tr := exchanges(5)

	gpterm.HistoryPolicy{Context: true}.Apply(tr)
	assert.Equal(t, 10, tr.Len())
}

func TestHistoryPolicy_DropsOldestExchange(t *testing.T) {
	t.Parallel()
	tr := exchanges(6)

	gpterm.HistoryPolicy{Context: true}.Apply(tr)
	require.Equal(t, 10, tr.Len())
	assert.Equal(t, "q1", tr.Messages[0].Content)
	assert.Equal(t, "a5", tr.Messages[9].Content)
}

func TestHistoryPolicy_SystemMessageOutsideWindow(t *testing.T) {
	t.Parallel()
	tr := &gpterm.Transcript{Messages: []gpterm.Message{{Role: gpterm.RoleSystem, Content: "sys"}}}
	tr.Messages = append(tr.Messages, exchanges(6).Messages...)

	gpterm.HistoryPolicy{Context: true}.Apply(tr)
	require.Equal(t, 11, tr.Len())
	assert.Equal(t, gpterm.RoleSystem, tr.Messages[0].Role)
	assert.Equal(t, "q1", tr.Messages[1].Content)
}

func TestHistoryPolicy_CustomWindow(t *testing.T) {
	t.Parallel()
	tr := exchanges(2)

	gpterm.HistoryPolicy{Context: true, Window: 2}.Apply(tr)
	assert.Equal(t, []gpterm.Message{
		{Role: gpterm.RoleUser, Content: "q1"},
		{Role: gpterm.RoleAssistant, Content: "a1"},
	}, tr.Messages)
}
