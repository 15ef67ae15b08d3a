// Package embedder defines the embedding provider boundary consumed by
// semantic chunking and an Ollama-backed implementation of it.
package embedder

import (
	"context"
	"errors"
)

// Embedder maps an ordered batch of sentences to one vector per sentence,
// same length and order as the input. Implementations must be safe for
// concurrent use; callers treat Embed as a synchronous request/response
// boundary and own timeout policy via ctx.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// ErrResultMismatch marks a provider response whose vector count does not
// match the input count. It is a provider failure, never retried by the
// chunking core.
var ErrResultMismatch = errors.New("embedding count does not match input count")
