// Package memory provides an in-process vector store using a brute-force
// cosine scan. Adequate below ~100k chunks and the store of choice for
// tests and single-machine deployments.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
)

var _ domain.VectorStore = (*Store)(nil)

type chunkKey struct {
	filename string
	sequence int
}

// Store keeps embedded chunks in memory, keyed by (source filename,
// sequence index) so re-upserting a document replaces its rows.
type Store struct {
	mu        sync.RWMutex
	dimension int
	rows      map[chunkKey]domain.Chunk
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{rows: make(map[chunkKey]domain.Chunk)}
}

// Init fixes the vector dimension. Re-initializing with the same dimension
// is a no-op; changing the dimension drops all rows.
func (s *Store) Init(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("memory: invalid dimension %d", dimension)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if dimension != s.dimension {
		s.dimension = dimension
		s.rows = make(map[chunkKey]domain.Chunk)
	}
	return nil
}

// Upsert writes or replaces the given chunks in one call.
func (s *Store) Upsert(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range chunks {
		if len(ch.Embedding) != s.dimension {
			return fmt.Errorf("memory: chunk %s/%d embedding dimension %d does not match index dimension %d",
				ch.SourceFilename, ch.SequenceIndex, len(ch.Embedding), s.dimension)
		}
	}
	now := time.Now()
	for _, ch := range chunks {
		if ch.CreatedAt.IsZero() {
			ch.CreatedAt = now
		}
		s.rows[chunkKey{ch.SourceFilename, ch.SequenceIndex}] = ch
	}
	return nil
}

// Search returns at most topK matches with cosine similarity strictly above
// threshold, in descending similarity order. No match is not an error.
func (s *Store) Search(_ context.Context, vector []float64, threshold float64, topK int) ([]domain.RetrievedMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("memory: query dimension %d does not match index dimension %d", len(vector), s.dimension)
	}
	if topK <= 0 {
		return nil, nil
	}

	matches := make([]domain.RetrievedMatch, 0, topK)
	for _, ch := range s.rows {
		sim := cosine(vector, ch.Embedding)
		if sim > threshold {
			matches = append(matches, domain.RetrievedMatch{Chunk: ch, Similarity: sim})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Similarity > matches[j].Similarity })
	if len(matches) > topK {
		matches = matches[:topK]
	}
	for i := range matches {
		matches[i].Rank = i
	}
	return matches, nil
}

// DeleteSource removes every chunk derived from the named source file.
func (s *Store) DeleteSource(_ context.Context, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.rows {
		if key.filename == filename {
			delete(s.rows, key)
		}
	}
	return nil
}

// Len reports the number of stored chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
