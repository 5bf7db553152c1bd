package openai

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gpterm/gpterm"
)

const unknownErrorKind = "unknown_error"

// decode maps one frame payload to exactly one event.
//
// The success schema is tried first and the error schema only when the
// payload does not carry a delta, so a frame never yields both. Valid JSON
// that matches neither shape is a decode failure wrapping gpterm.ErrSchema.
func decode(payload string) gpterm.Event {
	raw := []byte(payload)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		if json.Valid(raw) {
			err = gpterm.ErrSchema
		}
		return gpterm.EventDecodeFailure{Raw: payload, Cause: err}
	}

	if ev, ok := decodeDelta(raw, fields); ok {
		return ev
	}
	if ev, ok := decodeError(fields); ok {
		return ev
	}
	return gpterm.EventDecodeFailure{Raw: payload, Cause: gpterm.ErrSchema}
}

func decodeDelta(raw []byte, fields map[string]json.RawMessage) (gpterm.Event, bool) {
	_, hasChoices := fields["choices"]
	_, hasDelta := fields["delta"]
	if !hasChoices && !hasDelta {
		return nil, false
	}

	var chunk apiChunk
	if err := json.Unmarshal(raw, &chunk); err != nil {
		return nil, false
	}

	if hasChoices && isArray(fields["choices"]) {
		if len(chunk.Choices) == 0 {
			// Keep-alive and usage frames carry no choices.
			return gpterm.EventContentDelta{}, true
		}
		choice := chunk.Choices[0]
		if choice.Delta == nil {
			return nil, false
		}
		ev := deltaEvent(choice.Delta)
		if choice.FinishReason != nil {
			ev.FinishReason = *choice.FinishReason
		}
		return ev, true
	}

	if chunk.Delta != nil {
		return deltaEvent(chunk.Delta), true
	}
	return nil, false
}

func deltaEvent(d *apiDelta) gpterm.EventContentDelta {
	var ev gpterm.EventContentDelta
	if d.Content != nil {
		ev.Text = *d.Content
	}
	if d.Role != nil {
		ev.Role = *d.Role
	}
	return ev
}

func decodeError(fields map[string]json.RawMessage) (gpterm.EventServerError, bool) {
	rawErr, ok := fields["error"]
	if !ok || !isObject(rawErr) {
		return gpterm.EventServerError{}, false
	}

	var e apiError
	if err := json.Unmarshal(rawErr, &e); err != nil {
		return gpterm.EventServerError{}, false
	}
	return serverEvent(&e), true
}

func serverEvent(e *apiError) gpterm.EventServerError {
	ev := gpterm.EventServerError{
		Kind:  unknownErrorKind,
		Param: scalarString(e.Param),
		Code:  scalarString(e.Code),
	}
	if e.Type != nil && *e.Type != "" {
		ev.Kind = *e.Type
	}
	if e.Message != nil {
		ev.Message = *e.Message
	}
	return ev
}

// scalarString renders a JSON string or number as text. Null, absent and
// composite values render empty.
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		return n.String()
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return ""
		}
		return strconv.FormatBool(b)
	}
	return ""
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
