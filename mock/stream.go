package mock

import "github.com/gpterm/gpterm"

// Interface compliance check.
var _ gpterm.Stream = (*Stream)(nil)

// Stream is a test double for gpterm.Stream.
// NextFn panics when nil to catch missing setup. CloseFn and StateFn are
// nil-safe (no-op and StreamStateNew) because callers commonly defer
// stream.Close() and rarely need custom behavior there.
type Stream struct {
	NextFn  func() (gpterm.Event, error)
	StateFn func() gpterm.StreamState
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (gpterm.Event, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() gpterm.StreamState {
	if s.StateFn == nil {
		return gpterm.StreamStateNew
	}
	return s.StateFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
