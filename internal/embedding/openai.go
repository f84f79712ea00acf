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

// Defaults for the OpenAI-compatible embedding client. The same wire format
// is served by OpenAI itself and by local inference servers such as Ollama.
const (
	OpenAIDefaultBaseURL   = "https://api.openai.com/v1"
	OpenAIDefaultModel     = "text-embedding-3-small"
	OpenAIDefaultDimension = 1536
	OpenAIDefaultTimeout   = 30 * time.Second
)

var _ domain.Embedder = (*OpenAI)(nil)

// OpenAIConfig configures the OpenAI-compatible embedding client.
type OpenAIConfig struct {
	// APIKey authenticates requests (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	BaseURL string

	// Model is the embedding model (default: text-embedding-3-small).
	Model string

	// Dimension is the output vector size (default: 1536).
	Dimension int

	// Timeout bounds every embedding request (default: 30s).
	Timeout time.Duration
}

// OpenAI embeds text via an OpenAI-compatible /embeddings endpoint.
type OpenAI struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	model     string
	dimension int
}

type openaiEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openaiEmbedResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOpenAI creates a new OpenAI-compatible embedding client.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = OpenAIDefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = OpenAIDefaultModel
	}
	if cfg.Dimension == 0 {
		cfg.Dimension = OpenAIDefaultDimension
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = OpenAIDefaultTimeout
	}
	return &OpenAI{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		dimension: cfg.Dimension,
	}, nil
}

// Name returns the embedder identifier.
func (o *OpenAI) Name() string { return "openai/" + o.model }

// Dimension returns the fixed output vector size.
func (o *OpenAI) Dimension() int { return o.dimension }

// Embed embeds a single query text.
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := o.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts in one API call, preserving input order.
func (o *OpenAI) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	jsonBody, err := json.Marshal(openaiEmbedRequest{Model: o.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/embeddings", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: openai: %v", domain.ErrEmbeddingUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: openai: read response: %v", domain.ErrEmbeddingUnavailable, err)
	}

	var embedResp openaiEmbedResponse
	if err := json.Unmarshal(payload, &embedResp); err != nil {
		return nil, fmt.Errorf("%w: openai: decode response: %v", domain.ErrEmbeddingUnavailable, err)
	}
	if embedResp.Error != nil {
		return nil, fmt.Errorf("%w: openai: %s", domain.ErrEmbeddingUnavailable, embedResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: openai: status %d: %s", domain.ErrEmbeddingUnavailable, resp.StatusCode, string(payload))
	}
	if len(embedResp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: openai returned %d embeddings for %d texts",
			domain.ErrEmbeddingUnavailable, len(embedResp.Data), len(texts))
	}

	vectors := make([][]float64, len(texts))
	for _, d := range embedResp.Data {
		if len(d.Embedding) != o.dimension {
			return nil, fmt.Errorf("openai: embedding dimension %d does not match configured %d", len(d.Embedding), o.dimension)
		}
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("%w: openai returned out-of-range index %d", domain.ErrEmbeddingUnavailable, d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
