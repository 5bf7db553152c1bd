package gpterm_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gpterm/gpterm"
	"github.com/stretchr/testify/assert"
)

func TestServerError_Error(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "server error: invalid_request_error",
		(&gpterm.ServerError{Kind: "invalid_request_error"}).Error())
	assert.Equal(t, "server error: rate_limit: slow down",
		(&gpterm.ServerError{Kind: "rate_limit", Message: "slow down"}).Error())
}

func TestDecodeError_Unwrap(t *testing.T) {
	t.Parallel()
	err := &gpterm.DecodeError{Raw: "[]", Cause: gpterm.ErrSchema}
	assert.ErrorIs(t, err, gpterm.ErrSchema)
	assert.Contains(t, err.Error(), `"[]"`)
}

func TestIsFatal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"server error", &gpterm.ServerError{Kind: "x"}, true},
		{"wrapped server error", fmt.Errorf("turn: %w", &gpterm.ServerError{Kind: "x"}), true},
		{"decode error", &gpterm.DecodeError{Raw: "{", Cause: errors.New("eof")}, true},
		{"request error", fmt.Errorf("%w: dial", gpterm.ErrRequest), false},
		{"transport error", fmt.Errorf("%w: reset", gpterm.ErrTransport), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gpterm.IsFatal(tt.err))
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, gpterm.ExitCode(nil))
	assert.Equal(t, 0, gpterm.ExitCode(&gpterm.ServerError{Kind: "invalid_request_error"}))
	assert.Equal(t, 1, gpterm.ExitCode(&gpterm.DecodeError{Raw: "{", Cause: errors.New("bad")}))
	assert.Equal(t, 1, gpterm.ExitCode(gpterm.ErrRequest))
}
