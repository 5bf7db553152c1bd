package gpterm

import "sync/atomic"

// Gate is the cancellation flag shared between the input context (a signal
// handler or the TUI update loop) and the in-flight turn. The zero value is
// ready to use and means "continue". A nil *Gate never stops.
type Gate struct {
	stopped atomic.Bool
}

// NewGate returns a Gate in the continue state.
func NewGate() *Gate {
	return &Gate{}
}

// Reset puts the gate back into the continue state. Frontends call it when
// they accept a new line of input, before the turn starts, so a previous
// cancellation does not leak forward.
func (g *Gate) Reset() {
	g.stopped.Store(false)
}

// Stop requests cancellation. It reports whether the gate was already
// stopped; callers treat a second stop as a request to exit.
func (g *Gate) Stop() (already bool) {
	return g.stopped.Swap(true)
}

// Continue reports whether the turn may keep reading.
func (g *Gate) Continue() bool {
	if g == nil {
		return true
	}
	return !g.stopped.Load()
}
