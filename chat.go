package gpterm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// TurnState is the per-turn state machine:
//
//	Idle → Sending → Streaming → {Completed | Cancelled | Failed} → Idle
type TurnState int32

const (
	TurnIdle TurnState = iota
	TurnSending
	TurnStreaming
	TurnCompleted
	TurnCancelled
	TurnFailed
)

func (s TurnState) String() string {
	switch s {
	case TurnIdle:
		return "idle"
	case TurnSending:
		return "sending"
	case TurnStreaming:
		return "streaming"
	case TurnCompleted:
		return "completed"
	case TurnCancelled:
		return "cancelled"
	case TurnFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TurnResult is the terminal outcome of one turn. Text holds whatever
// assistant text was accumulated, including partial text on cancellation
// and transport failure.
type TurnResult struct {
	State TurnState
	Text  string
}

// Chat drives one request/response cycle at a time against a Provider.
type Chat struct {
	provider    Provider
	gate        *Gate
	model       string
	temperature float64
	delay       time.Duration
	logger      *zap.Logger

	state atomic.Int32
}

// ChatOption configures a Chat.
type ChatOption func(*Chat)

// WithModel sets the model ID sent with every request.
// Empty string means the provider uses its default model.
func WithModel(model string) ChatOption {
	return func(c *Chat) { c.model = model }
}

// WithTemperature sets the sampling temperature. Default is 0.7.
func WithTemperature(t float64) ChatOption {
	return func(c *Chat) { c.temperature = t }
}

// WithTypingDelay sets the pause between echoed characters.
func WithTypingDelay(d time.Duration) ChatOption {
	return func(c *Chat) { c.delay = d }
}

// WithLogger sets the diagnostic logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) ChatOption {
	return func(c *Chat) { c.logger = l }
}

// NewChat creates a Chat. The gate is shared with whatever handles user
// interrupts; a nil gate is replaced by a private one.
func NewChat(provider Provider, gate *Gate, opts ...ChatOption) *Chat {
	if gate == nil {
		gate = NewGate()
	}
	c := &Chat{
		provider:    provider,
		gate:        gate,
		temperature: 0.7,
		delay:       10 * time.Millisecond,
		logger:      zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Gate returns the cancellation gate observed by this Chat's turns.
func (c *Chat) Gate() *Gate { return c.gate }

// State returns the live turn state. Safe to call from any goroutine.
func (c *Chat) State() TurnState { return TurnState(c.state.Load()) }

func (c *Chat) setState(s TurnState) { c.state.Store(int32(s)) }

// Turn sends the transcript, streams the reply into sink and appends the
// assistant text to the transcript on completion or cancellation.
//
// Cancellation is a successful outcome: the error is nil and the result
// state is TurnCancelled. Server errors, decode failures, request failures
// and transport failures end the turn with TurnFailed and a classified
// error (*ServerError, *DecodeError, ErrRequest, ErrTransport).
//
// Turn does not reset the gate. The frontend resets it when it accepts the
// input, so an interrupt that lands before the turn goroutine starts still
// cancels the turn.
func (c *Chat) Turn(ctx context.Context, t *Transcript, sink Sink) (TurnResult, error) {
	c.setState(TurnSending)
	defer c.setState(TurnIdle)

	req := Request{
		Model:       c.model,
		Messages:    t.Snapshot(),
		Temperature: c.temperature,
		Gate:        c.gate,
	}
	if err := req.Validate(); err != nil {
		return c.fail(TurnResult{}, err)
	}

	log := c.logger.With(zap.String("model", req.Model), zap.Int("messages", len(req.Messages)))
	log.Debug("sending request")

	stream, err := c.provider.Stream(ctx, req)
	if err != nil {
		var serverErr *ServerError
		if !errors.Is(err, ErrRequest) && !errors.As(err, &serverErr) {
			err = fmt.Errorf("%w: %w", ErrRequest, err)
		}
		return c.fail(TurnResult{}, err)
	}
	defer stream.Close()

	c.setState(TurnStreaming)
	acc := NewAccumulator(sink, c.delay)
	for {
		evt, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return c.fail(TurnResult{Text: acc.Text()}, err)
		}
		switch e := evt.(type) {
		case EventContentDelta:
			if err := acc.Consume(ctx, e); err != nil {
				return c.fail(TurnResult{Text: acc.Text()}, err)
			}
		case EventServerError:
			return c.fail(TurnResult{Text: acc.Text()}, e.Err())
		case EventDecodeFailure:
			return c.fail(TurnResult{Text: acc.Text()}, e.Err())
		}
	}

	res := TurnResult{State: TurnCompleted, Text: acc.Text()}
	if stream.State() == StreamStateCancelled {
		res.State = TurnCancelled
	}
	t.Append(RoleAssistant, res.Text)
	c.setState(res.State)
	log.Debug("turn finished", zap.Stringer("state", res.State), zap.Int("chars", len(res.Text)))
	return res, nil
}

func (c *Chat) fail(res TurnResult, err error) (TurnResult, error) {
	res.State = TurnFailed
	c.setState(TurnFailed)
	c.logger.Debug("turn failed", zap.Error(err))
	return res, err
}
