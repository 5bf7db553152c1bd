package openai

import (
	"io"

	"github.com/gpterm/gpterm"
)

// Assembler exposes the frame assembler to external tests.
type Assembler struct{ a *assembler }

func NewAssembler(r io.Reader, gate *gpterm.Gate, readSize int) *Assembler {
	return &Assembler{a: newAssembler(r, gate, readSize)}
}

func (a *Assembler) Next() (string, error) { return a.a.next() }

var (
	Decode       = decode
	ErrCancelled = errCancelled
)

func NewStream(body io.ReadCloser, gate *gpterm.Gate, readSize int) gpterm.Stream {
	return newStream(body, gate, readSize)
}
