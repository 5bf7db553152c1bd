package bubbletea

// BlockSeparator exports blockSeparator for testing.
func BlockSeparator(prev, curr MessageBlock) string {
	return blockSeparator(prev, curr)
}

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// StatusLine exports statusLine for testing.
func StatusLine(m Model) string {
	return m.statusLine()
}

// Stopping reports whether the model is waiting for a stopped turn to end.
func Stopping(m Model) bool {
	return m.stopping
}

// Confirming reports whether the model is waiting for a second interrupt.
func Confirming(m Model) bool {
	return m.confirming
}

const (
	ExitHint = exitHint
	IdleHint = idleHint
)

// Sanitize exports sanitize for testing.
var Sanitize = sanitize
