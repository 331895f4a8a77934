// Package interrupt provides the cooperative cancellation capability which
// multi-row sync operations poll once per row.
package interrupt

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrInterrupted is returned when an operation was cancelled by its caller.
var ErrInterrupted = errors.New("operation interrupted")

// Interruptee is checked at fixed points of a long running operation.
type Interruptee interface {
	// ErrIfInterrupted returns an error wrapping ErrInterrupted once the
	// operation should stop, nil otherwise.
	ErrIfInterrupted() error
}

type never struct{}

func (never) ErrIfInterrupted() error { return nil }

// Never is an Interruptee that is never interrupted.
var Never Interruptee = never{}

type contextInterruptee struct {
	ctx context.Context
}

// FromContext returns an Interruptee that is interrupted once ctx is done.
func FromContext(ctx context.Context) Interruptee {
	return contextInterruptee{ctx: ctx}
}

func (c contextInterruptee) ErrIfInterrupted() error {
	if err := c.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(c.ctx))
	}
	return nil
}

// Flag is an Interruptee driven by an explicit Interrupt call.
// It is safe for concurrent use.
type Flag struct {
	interrupted atomic.Bool
}

// Interrupt marks the flag as interrupted.
func (f *Flag) Interrupt() {
	f.interrupted.Store(true)
}

// ErrIfInterrupted implements Interruptee.
func (f *Flag) ErrIfInterrupted() error {
	if f.interrupted.Load() {
		return fmt.Errorf("%w: interrupt requested", ErrInterrupted)
	}
	return nil
}
