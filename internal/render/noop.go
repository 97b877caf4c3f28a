package render

import (
	"context"
	"errors"
)

// Noop implements Renderer but always returns an error to indicate that
// rendering is not available in the current build.
type Noop struct{}

// NewNoop creates a new Noop renderer.
func NewNoop() *Noop {
	return &Noop{}
}

// Render returns an error since this is a stub implementation.
func (Noop) Render(_ context.Context, _ string, _ Options) (Result, error) {
	return Result{}, errors.New("renderer not configured")
}
