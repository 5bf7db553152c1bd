package gemini

import (
	"iter"

	"google.golang.org/genai"

	"github.com/gpterm/gpterm"
)

func NewStreamFromIter(seq iter.Seq2[*genai.GenerateContentResponse, error], gate *gpterm.Gate) gpterm.Stream {
	return newStream(seq, gate)
}
