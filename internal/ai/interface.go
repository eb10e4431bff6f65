// README: Provider contract for text-generation backends.
package ai

import (
	"context"
	"errors"

	"wayfarer/internal/plan"
)

var (
	// ErrMissingKey is a configuration error: the selected provider has no
	// API key. Surfaced before any network call.
	ErrMissingKey = errors.New("ai: missing provider api key")
	// ErrUnknownProvider means the request named a provider this build
	// does not know.
	ErrUnknownProvider = errors.New("ai: unknown provider")
)

// Result is one completed generation: the full text plus any grounding
// sources the provider natively attaches. Sources are nil for providers
// without grounding support.
type Result struct {
	Text    string
	Sources []plan.SearchSource
}

// Provider abstracts a remote text-generation service.
type Provider interface {
	// Generate returns the full completion in one piece.
	Generate(ctx context.Context, prompt string) (Result, error)

	// GenerateStream delivers the completion incrementally through
	// onChunk, in arrival order, and returns the accumulated result.
	// Providers without token streaming deliver a single chunk. An error
	// from onChunk aborts the stream.
	GenerateStream(ctx context.Context, prompt string, onChunk func(string) error) (Result, error)
}
