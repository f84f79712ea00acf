// Package retrieval embeds a question and finds the chunks most likely to
// ground its answer.
package retrieval

import (
	"context"
	"errors"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/logger"
)

// Defaults for answering a question: at most three passages, each strictly
// above 0.5 cosine similarity.
const (
	DefaultThreshold = 0.5
	DefaultTopK      = 3
)

// Retriever turns a question into the ranked context passages for it.
type Retriever struct {
	embedder  domain.Embedder
	store     domain.VectorStore
	threshold float64
	topK      int
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithThreshold overrides the minimum similarity a match must exceed.
func WithThreshold(threshold float64) Option {
	return func(r *Retriever) { r.threshold = threshold }
}

// WithTopK overrides how many matches are returned at most.
func WithTopK(topK int) Option {
	return func(r *Retriever) { r.topK = topK }
}

// NewRetriever wires an embedder and a vector store into a retriever.
func NewRetriever(embedder domain.Embedder, store domain.VectorStore, opts ...Option) *Retriever {
	r := &Retriever{
		embedder:  embedder,
		store:     store,
		threshold: DefaultThreshold,
		topK:      DefaultTopK,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve embeds the question and searches the index with the configured
// threshold and limit. An empty result is a valid outcome, not an error.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]domain.RetrievedMatch, error) {
	return r.retrieve(ctx, question, r.threshold, r.topK)
}

// RetrieveTopK runs the same search with a caller-chosen limit, used when
// exporting a broader context than the answering default.
func (r *Retriever) RetrieveTopK(ctx context.Context, question string, topK int) ([]domain.RetrievedMatch, error) {
	return r.retrieve(ctx, question, r.threshold, topK)
}

func (r *Retriever) retrieve(ctx context.Context, question string, threshold float64, topK int) ([]domain.RetrievedMatch, error) {
	vector, err := r.embedQuestion(ctx, question)
	if err != nil {
		return nil, err
	}

	matches, err := r.store.Search(ctx, vector, threshold, topK)
	if err != nil {
		return nil, err
	}
	logger.Debug("retrieved %d matches above %.2f for question of %d bytes", len(matches), threshold, len(question))
	return matches, nil
}

// embedQuestion embeds the question, retrying exactly once when the
// embedding service itself is unavailable. Any other failure surfaces
// immediately.
func (r *Retriever) embedQuestion(ctx context.Context, question string) ([]float64, error) {
	vector, err := r.embedder.Embed(ctx, question)
	if err == nil {
		return vector, nil
	}
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		return nil, err
	}

	logger.Warn("question embedding failed, retrying once: %v", err)
	vector, err = r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, err
	}
	return vector, nil
}
