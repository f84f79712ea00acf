// Package embedding provides clients that map text to fixed-length dense
// vectors. Each client is constructed explicitly at startup so its dimension
// is known before anything is ingested and tests can substitute a
// deterministic stub.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
)

// Defaults for the Gemini embedding client.
const (
	GeminiDefaultBaseURL   = "https://generativelanguage.googleapis.com"
	GeminiDefaultModel     = "text-embedding-004"
	GeminiDefaultDimension = 768
	GeminiDefaultTimeout   = 30 * time.Second
)

// Gemini task types. Documents and queries are embedded into the same space
// but the model is told which side of the retrieval it is looking at.
const (
	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	taskRetrievalQuery    = "RETRIEVAL_QUERY"
)

var _ domain.Embedder = (*Gemini)(nil)

// GeminiConfig configures the Gemini embedding client.
type GeminiConfig struct {
	// APIKey is the Google AI API key (required).
	APIKey string

	// BaseURL overrides the API endpoint. Useful for testing.
	BaseURL string

	// Model is the embedding model (default: text-embedding-004).
	Model string

	// Dimension is the output vector size (default: 768, fixed by the model).
	Dimension int

	// Timeout bounds every embedding request (default: 30s).
	Timeout time.Duration
}

// Gemini embeds text with Google's Gemini embedding API.
type Gemini struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	model     string
	dimension int
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiEmbedRequest struct {
	Model    string        `json:"model"`
	Content  geminiContent `json:"content"`
	TaskType string        `json:"taskType"`
}

type geminiBatchRequest struct {
	Requests []geminiEmbedRequest `json:"requests"`
}

type geminiValues struct {
	Values []float64 `json:"values"`
}

type geminiEmbedResponse struct {
	Embedding  *geminiValues  `json:"embedding,omitempty"`
	Embeddings []geminiValues `json:"embeddings,omitempty"`
	Error      *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewGemini creates a new Gemini embedding client.
func NewGemini(cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = GeminiDefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = GeminiDefaultModel
	}
	if cfg.Dimension == 0 {
		cfg.Dimension = GeminiDefaultDimension
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = GeminiDefaultTimeout
	}
	return &Gemini{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		dimension: cfg.Dimension,
	}, nil
}

// Name returns the embedder identifier.
func (g *Gemini) Name() string { return "gemini/" + g.model }

// Dimension returns the fixed output vector size.
func (g *Gemini) Dimension() int { return g.dimension }

// Embed embeds a single query text.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float64, error) {
	reqBody := geminiEmbedRequest{
		Model:    "models/" + g.model,
		Content:  geminiContent{Parts: []geminiPart{{Text: text}}},
		TaskType: taskRetrievalQuery,
	}
	var resp geminiEmbedResponse
	if err := g.post(ctx, ":embedContent", reqBody, &resp); err != nil {
		return nil, err
	}
	if resp.Embedding == nil {
		return nil, fmt.Errorf("%w: gemini returned no embedding", domain.ErrEmbeddingUnavailable)
	}
	return g.checkDimension(resp.Embedding.Values)
}

// EmbedBatch embeds a document's chunks in one API call, preserving order.
func (g *Gemini) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	batch := geminiBatchRequest{Requests: make([]geminiEmbedRequest, len(texts))}
	for i, text := range texts {
		batch.Requests[i] = geminiEmbedRequest{
			Model:    "models/" + g.model,
			Content:  geminiContent{Parts: []geminiPart{{Text: text}}},
			TaskType: taskRetrievalDocument,
		}
	}
	var resp geminiEmbedResponse
	if err := g.post(ctx, ":batchEmbedContents", batch, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: gemini returned %d embeddings for %d texts",
			domain.ErrEmbeddingUnavailable, len(resp.Embeddings), len(texts))
	}
	vectors := make([][]float64, len(texts))
	for i, e := range resp.Embeddings {
		v, err := g.checkDimension(e.Values)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

func (g *Gemini) post(ctx context.Context, method string, body any, out *geminiEmbedResponse) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s%s?key=%s", g.baseURL, g.model, method, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: gemini: %v", domain.ErrEmbeddingUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: gemini: read response: %v", domain.ErrEmbeddingUnavailable, err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: gemini: decode response: %v", domain.ErrEmbeddingUnavailable, err)
	}
	if out.Error != nil {
		return fmt.Errorf("%w: gemini: %s (%s)", domain.ErrEmbeddingUnavailable, out.Error.Message, out.Error.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: gemini: status %d: %s", domain.ErrEmbeddingUnavailable, resp.StatusCode, string(payload))
	}
	return nil
}

// checkDimension enforces the fixed-dimensionality invariant. A vector of
// the wrong size means the deployment is misconfigured against its index,
// which is corruption, not a retryable failure.
func (g *Gemini) checkDimension(v []float64) ([]float64, error) {
	if len(v) != g.dimension {
		return nil, fmt.Errorf("gemini: embedding dimension %d does not match configured %d", len(v), g.dimension)
	}
	return v, nil
}
