// Package llm provides completion clients for the answer generator. Each
// provider is a thin HTTP adapter over one vendor's completion API; failover
// between them is the generator's job, not the client's.
package llm

import "context"

// Options configures a single completion request.
type Options struct {
	// MaxTokens caps the length of the generated answer.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// Provider produces a completion from a system instruction and a user
// prompt. Implementations make exactly one attempt per call: the caller's
// provider ordering is the retry strategy.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, user string, opts Options) (string, error)
}
