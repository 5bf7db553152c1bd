package gpterm

import (
	"context"
	"strings"
	"time"

	"github.com/rivo/uniseg"
	"golang.org/x/time/rate"
)

// Accumulator collects the assistant text of one turn and echoes it to a
// Sink one grapheme cluster at a time, spaced by a fixed delay.
//
// Each call to Consume appends exactly once; the accumulator keeps no
// reference to the events it is given.
type Accumulator struct {
	sink    Sink
	limiter *rate.Limiter
	text    strings.Builder
}

// NewAccumulator creates an Accumulator writing to sink. A non-positive
// delay disables pacing. A nil sink discards output.
func NewAccumulator(sink Sink, delay time.Duration) *Accumulator {
	if sink == nil {
		sink = Discard
	}
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Accumulator{
		sink:    sink,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Consume appends the delta's text to the turn and emits it character by
// character. Waiting between characters yields to the scheduler and
// returns early with ctx's error when ctx is done. Deltas without text
// have no effect.
func (a *Accumulator) Consume(ctx context.Context, delta EventContentDelta) error {
	if delta.Text == "" {
		return nil
	}
	a.text.WriteString(delta.Text)

	g := uniseg.NewGraphemes(delta.Text)
	for g.Next() {
		if err := a.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := a.sink.Emit(g.Str()); err != nil {
			return err
		}
	}
	return nil
}

// Text returns everything accumulated so far.
func (a *Accumulator) Text() string {
	return a.text.String()
}
