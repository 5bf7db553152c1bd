package gpterm

// Event is a sealed interface representing one decoded stream frame.
// Every frame maps to exactly one Event. Transport failures come from
// Stream.Next's error return, not from events.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventContentDelta carries an incremental fragment of assistant text.
// Text may be empty for role-only or finish-only frames.
type EventContentDelta struct {
	Text         string
	Role         string
	FinishReason string
}

func (EventContentDelta) event() {}

// EventServerError is a frame that decoded as the protocol's error shape.
type EventServerError struct {
	Kind    string
	Message string
	Param   string
	Code    string
}

func (EventServerError) event() {}

// Err converts the event into the error surfaced to callers.
func (e EventServerError) Err() *ServerError {
	return &ServerError{Kind: e.Kind, Message: e.Message, Param: e.Param, Code: e.Code}
}

// EventDecodeFailure is a frame whose payload could not be decoded.
type EventDecodeFailure struct {
	Raw   string
	Cause error
}

func (EventDecodeFailure) event() {}

// Err converts the event into the error surfaced to callers.
func (e EventDecodeFailure) Err() *DecodeError {
	return &DecodeError{Raw: e.Raw, Cause: e.Cause}
}

// Interface compliance checks.
var (
	_ Event = EventContentDelta{}
	_ Event = EventServerError{}
	_ Event = EventDecodeFailure{}
)
