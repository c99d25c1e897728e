package llm

import (
	"context"
	"errors"
)

// Client abstracts text-generation providers for the scan pipeline.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when no provider API key is present. Callers
// treat it differently from transient provider failures.
var ErrNotConfigured = errors.New("llm provider not configured")

// Func adapts a plain function into a Client. Used by tests and fakes.
type Func func(ctx context.Context, prompt string) (string, error)

// Generate calls the wrapped function.
func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
