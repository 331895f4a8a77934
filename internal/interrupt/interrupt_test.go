package interrupt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNever(t *testing.T) {
	assert.NoError(t, Never.ErrIfInterrupted())
}

func TestFromContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	signal := FromContext(ctx)

	assert.NoError(t, signal.ErrIfInterrupted())

	cancel()
	err := signal.ErrIfInterrupted()
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromContext_Cause(t *testing.T) {
	cause := errors.New("shutting down")
	ctx, cancel := context.WithCancelCause(context.Background())
	cancel(cause)

	err := FromContext(ctx).ErrIfInterrupted()
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.ErrorIs(t, err, cause)
}

func TestFlag(t *testing.T) {
	var f Flag
	assert.NoError(t, f.ErrIfInterrupted())

	f.Interrupt()
	err := f.ErrIfInterrupted()
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.NotEqual(t, ErrInterrupted, err)
	assert.Contains(t, err.Error(), "interrupt requested")
}
