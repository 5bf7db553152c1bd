package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gpterm/gpterm"
)

const exitHint = "Press Ctrl+C again to exit"

// REPL is the read-send loop of the plain frontend.
type REPL struct {
	Input   gpterm.InputSource
	Relay   *gpterm.Relay
	Session *gpterm.Session
	Printer *Printer
	Logger  *zap.Logger
}

// Run reads lines until the user exits or a turn fails fatally.
//
// Ctrl+C or Ctrl+D at the prompt asks for confirmation; a second one in a
// row exits. Request and transport failures end only the current turn.
// Server errors and decode failures end the session and are returned so the
// caller can pick an exit status.
func (r *REPL) Run(ctx context.Context) error {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	confirming := false
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := r.Input.ReadLine()
		switch {
		case errors.Is(err, gpterm.ErrInterrupted), errors.Is(err, io.EOF):
			if confirming {
				r.Printer.Goodbye()
				return nil
			}
			confirming = true
			r.Printer.Notice(exitHint)
			continue
		case err != nil:
			return fmt.Errorf("terminal: read input: %w", err)
		}
		confirming = false

		if strings.TrimSpace(line) == "" {
			continue
		}
		r.Relay.Chat.Gate().Reset()

		res, err := r.Relay.Send(ctx, r.Session, line, r.Printer)
		r.Printer.EndReply()
		logger.Debug("turn ended", zap.Stringer("state", res.State), zap.Error(err))
		if err == nil {
			continue
		}
		r.Printer.Error(err)
		if gpterm.IsFatal(err) {
			return err
		}
	}
}

// HandleInterrupts turns interrupt signals into gate stops until ctx is
// done. A signal arriving while the gate is already stopped calls exit.
func HandleInterrupts(ctx context.Context, sigs <-chan os.Signal, gate *gpterm.Gate, exit func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sigs:
			if gate.Stop() {
				exit()
				return
			}
		}
	}
}
