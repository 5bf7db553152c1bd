package gpterm

// DefaultWindow is the number of messages kept before the oldest exchange
// is dropped.
const DefaultWindow = 10

// HistoryPolicy decides how much of the conversation is resent each turn.
// It is a message-count window, not a token budget. A leading system
// message is never trimmed and does not count toward the window.
type HistoryPolicy struct {
	// Context keeps earlier turns. When false every request carries only
	// the current user line.
	Context bool

	// Window is the message count above which the oldest two messages
	// (one exchange) are dropped. Zero means DefaultWindow.
	Window int
}

// Apply trims t in place before a new user message is appended.
func (p HistoryPolicy) Apply(t *Transcript) {
	head := 0
	if t.Len() > 0 && t.Messages[0].Role == RoleSystem {
		head = 1
	}
	if !p.Context {
		if head == 0 {
			t.Clear()
			return
		}
		t.Messages = t.Messages[:head]
		return
	}
	window := p.Window
	if window <= 0 {
		window = DefaultWindow
	}
	if t.Len()-head > window {
		kept := make([]Message, 0, t.Len()-2)
		kept = append(kept, t.Messages[:head]...)
		kept = append(kept, t.Messages[head+2:]...)
		t.Messages = kept
	}
}
