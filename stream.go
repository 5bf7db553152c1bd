package gpterm

import "context"

// StreamState indicates the current state of a Stream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, frames arriving.
	StreamStateComplete                     // Sentinel seen or body exhausted.
	StreamStateCancelled                    // Gate stopped between chunks.
	StreamStateError                        // Next() returned a transport error.
	StreamStateClosed                       // Close() called before a terminal state.
)

func (s StreamState) String() string {
	switch s {
	case StreamStateNew:
		return "new"
	case StreamStateStreaming:
		return "streaming"
	case StreamStateComplete:
		return "complete"
	case StreamStateCancelled:
		return "cancelled"
	case StreamStateError:
		return "error"
	case StreamStateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Stream uses a pull-based iterator pattern. Next returns one Event per
// frame, in wire order, and io.EOF once the stream has ended either
// normally or by cancellation; State tells the two apart.
//
// Cancellation through Request.Gate is graceful: it is observed between
// chunks and ends the stream with StreamStateCancelled. Cancellation of the
// context passed to Provider.Stream aborts the underlying read and surfaces
// as an ErrTransport error.
type Stream interface {
	Next() (Event, error)
	State() StreamState
	Close() error
}

// Provider is a strategy pattern interface for chat-completion backends.
type Provider interface {
	Stream(ctx context.Context, req Request) (Stream, error)
}
