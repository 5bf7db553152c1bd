package openai

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/gpterm/gpterm"
)

const (
	dataMarker   = "data:"
	doneSentinel = "[DONE]"
)

// errCancelled ends assembly when the gate is stopped between chunks.
var errCancelled = errors.New("cancelled")

// assembler turns successive body reads into complete frame payloads.
//
// A frame is a line introduced by the "data:" marker and terminated by a
// newline. The marker only counts at the start of a line, so payload text
// containing "data:" never splits a frame. buf always holds exactly the
// bytes not yet resolved into a frame: after each step that is the
// trailing partial line, possibly empty. Because splitting always runs over
// the whole buffer, a marker or terminator split across reads is found
// once the pieces are joined.
type assembler struct {
	body  io.Reader
	gate  *gpterm.Gate
	buf   []byte
	store []byte
	chunk []byte
	eof   bool
	done  bool
}

func newAssembler(body io.Reader, gate *gpterm.Gate, readSize int) *assembler {
	if readSize <= 0 {
		readSize = defaultReadSize
	}
	return &assembler{
		body:  body,
		gate:  gate,
		chunk: make([]byte, readSize),
	}
}

// next returns the next frame payload. It returns io.EOF once the sentinel
// frame is seen or the body is exhausted, errCancelled when the gate was
// stopped, and an error wrapping gpterm.ErrTransport when a read fails or
// the body ends inside a frame.
// Whitespace-only frames and non-data lines are skipped.
func (a *assembler) next() (string, error) {
	if a.done {
		return "", io.EOF
	}
	for {
		if payload, ok := a.split(); ok {
			if payload == doneSentinel {
				a.finish()
				return "", io.EOF
			}
			return payload, nil
		}

		if a.eof {
			// A trailing line without its newline is a frame cut off in
			// transit. Only a bare sentinel may end the body that way.
			payload, ok := dataPayload(a.buf)
			a.finish()
			if ok && payload != doneSentinel {
				return "", fmt.Errorf("%w: %w", gpterm.ErrTransport, io.ErrUnexpectedEOF)
			}
			return "", io.EOF
		}

		// Every frame of the previous chunk has been handed out; this is
		// the point between chunks where cancellation is observed.
		if !a.gate.Continue() {
			a.finish()
			return "", errCancelled
		}

		if err := a.read(); err != nil {
			a.finish()
			return "", err
		}
	}
}

// split removes complete lines from the front of buf until one carries a
// non-blank data payload.
func (a *assembler) split() (string, bool) {
	for {
		i := bytes.IndexByte(a.buf, '\n')
		if i < 0 {
			return "", false
		}
		line := a.buf[:i]
		a.buf = a.buf[i+1:]
		if payload, ok := dataPayload(line); ok {
			return payload, true
		}
	}
}

func (a *assembler) read() error {
	// Move the partial line to the front of store so buf does not creep
	// forward through its backing array.
	a.buf = append(a.store[:0], a.buf...)

	n, err := a.body.Read(a.chunk)
	a.buf = append(a.buf, a.chunk[:n]...)
	a.store = a.buf
	switch {
	case err == io.EOF:
		a.eof = true
		return nil
	case err != nil:
		return fmt.Errorf("%w: %w", gpterm.ErrTransport, err)
	}
	return nil
}

// finish discards anything still buffered. No further reads happen.
func (a *assembler) finish() {
	a.done = true
	a.buf = nil
}

// dataPayload extracts the trimmed payload of a "data:" line.
func dataPayload(line []byte) (string, bool) {
	line = bytes.TrimSpace(line)
	rest, ok := bytes.CutPrefix(line, []byte(dataMarker))
	if !ok {
		return "", false
	}
	rest = bytes.TrimSpace(rest)
	if len(rest) == 0 {
		return "", false
	}
	return string(rest), true
}
