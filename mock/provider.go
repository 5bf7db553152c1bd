// Package mock provides test doubles for gpterm interfaces using function fields.
package mock

import (
	"context"

	"github.com/gpterm/gpterm"
)

// Interface compliance check.
var _ gpterm.Provider = (*Provider)(nil)

// Provider is a test double for gpterm.Provider.
// Set StreamFn before calling Stream.
type Provider struct {
	StreamFn func(ctx context.Context, req gpterm.Request) (gpterm.Stream, error)
}

// Stream delegates to StreamFn.
func (p *Provider) Stream(ctx context.Context, req gpterm.Request) (gpterm.Stream, error) {
	return p.StreamFn(ctx, req)
}
