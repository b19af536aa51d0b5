// Package latency simulates the I/O delay of the state containers.
package latency

import (
	"context"
	"time"
)

// Delays used by the containers.
const (
	ProductsLoad   = 800 * time.Millisecond
	OrdersLoad     = 600 * time.Millisecond
	ReportsLoad    = 600 * time.Millisecond
	AuthLoad       = 500 * time.Millisecond
	Login          = 1000 * time.Millisecond
	Mutation       = 500 * time.Millisecond
	GenerateReport = 1000 * time.Millisecond
)

type Simulator interface {
	// Wait blocks for d or until ctx is done, returning ctx.Err() in the latter case.
	Wait(ctx context.Context, d time.Duration) error
}

func New(enabled bool) Simulator {
	if enabled {
		return Timer{}
	}
	return None{}
}

type Timer struct{}

func (Timer) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// None returns immediately unless ctx is already done.
type None struct{}

func (None) Wait(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
