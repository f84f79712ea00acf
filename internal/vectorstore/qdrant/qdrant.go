// Package qdrant provides a minimal REST client to a Qdrant vector store.
// The collection uses cosine distance and is created on Init if missing.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
)

// DefaultTimeout bounds every request to the store.
const DefaultTimeout = 15 * time.Second

var _ domain.VectorStore = (*Store)(nil)

// Config contains connection details for a Qdrant store.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// Store talks to a Qdrant collection over its REST API.
type Store struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
}

// New creates a Qdrant-backed vector store client.
func New(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Init creates the collection if it does not exist and fixes the dimension.
func (s *Store) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("qdrant: invalid dimension %d", dimension)
	}
	s.dimension = dimension
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant answers 200 when the collection already exists with the same
	// schema and 409 when it exists at all; both mean we can proceed.
	err := s.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s", s.collection), body, nil, http.StatusConflict)
	if err != nil {
		return err
	}
	return nil
}

// Upsert writes or replaces a document's chunk set. Point IDs are derived
// deterministically from (source filename, sequence index), so re-writing a
// document overwrites its previous rows instead of duplicating them.
func (s *Store) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	for _, ch := range chunks {
		if len(ch.Embedding) != s.dimension {
			return fmt.Errorf("qdrant: chunk %s/%d embedding dimension %d does not match index dimension %d",
				ch.SourceFilename, ch.SequenceIndex, len(ch.Embedding), s.dimension)
		}
	}

	now := time.Now()
	points := make([]map[string]any, len(chunks))
	for i, ch := range chunks {
		createdAt := ch.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		points[i] = map[string]any{
			"id":     pointID(ch.SourceFilename, ch.SequenceIndex),
			"vector": ch.Embedding,
			"payload": map[string]any{
				"content":      ch.Content,
				"filename":     ch.SourceFilename,
				"chunk_id":     ch.SequenceIndex,
				"total_chunks": ch.TotalChunksInSource,
				"created_at":   createdAt.UTC().Format(time.RFC3339),
			},
		}
	}
	body := map[string]any{"points": points}
	return s.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s/points?wait=true", s.collection), body, nil)
}

// Search returns at most topK matches with similarity strictly above
// threshold, descending. Qdrant's score_threshold is inclusive, so results
// are re-filtered for the strict contract.
func (s *Store) Search(ctx context.Context, vector []float64, threshold float64, topK int) ([]domain.RetrievedMatch, error) {
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("qdrant: query dimension %d does not match index dimension %d", len(vector), s.dimension)
	}
	if topK <= 0 {
		return nil, nil
	}

	req := map[string]any{
		"vector":          vector,
		"limit":           topK,
		"score_threshold": threshold,
		"with_payload":    true,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/search", s.collection), req, &resp); err != nil {
		return nil, err
	}

	matches := make([]domain.RetrievedMatch, 0, len(resp.Result))
	for _, r := range resp.Result {
		if r.Score <= threshold {
			continue
		}
		ch := domain.Chunk{}
		if v, ok := r.Payload["content"].(string); ok {
			ch.Content = v
		}
		if v, ok := r.Payload["filename"].(string); ok {
			ch.SourceFilename = v
		}
		if v, ok := r.Payload["chunk_id"].(float64); ok {
			ch.SequenceIndex = int(v)
		}
		if v, ok := r.Payload["total_chunks"].(float64); ok {
			ch.TotalChunksInSource = int(v)
		}
		if v, ok := r.Payload["created_at"].(string); ok {
			if ts, err := time.Parse(time.RFC3339, v); err == nil {
				ch.CreatedAt = ts
			}
		}
		matches = append(matches, domain.RetrievedMatch{Chunk: ch, Similarity: r.Score, Rank: len(matches)})
	}
	return matches, nil
}

// DeleteSource removes every point whose payload filename matches.
func (s *Store) DeleteSource(ctx context.Context, filename string) error {
	body := map[string]any{
		"filter": map[string]any{
			"must": []map[string]any{
				{"key": "filename", "match": map[string]any{"value": filename}},
			},
		},
	}
	return s.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/delete?wait=true", s.collection), body, nil)
}

// pointID derives a stable UUID for a chunk so upserts are idempotent on
// (source filename, sequence index).
func pointID(filename string, sequence int) string {
	name := fmt.Sprintf("mcs-chatbot/%s#%d", filename, sequence)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// do sends one JSON request. Transport failures and unexpected statuses are
// reported as ErrIndexUnavailable so callers can distinguish a broken store
// from an empty result. Statuses in okExtra are tolerated.
func (s *Store) do(ctx context.Context, method, path string, body any, out any, okExtra ...int) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.url+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: qdrant %s %s: %v", domain.ErrIndexUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		tolerated := false
		for _, code := range okExtra {
			if resp.StatusCode == code {
				tolerated = true
				break
			}
		}
		if !tolerated {
			return fmt.Errorf("%w: qdrant %s %s: %s", domain.ErrIndexUnavailable, method, path, resp.Status)
		}
		return nil
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: qdrant %s %s: decode response: %v", domain.ErrIndexUnavailable, method, path, err)
		}
	}
	return nil
}
