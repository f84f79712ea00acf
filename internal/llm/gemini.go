package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Defaults for the Gemini completion client.
const (
	GeminiDefaultBaseURL = "https://generativelanguage.googleapis.com"
	GeminiDefaultModel   = "gemini-1.5-flash-8b"
	GeminiDefaultTimeout = 60 * time.Second
)

var _ Provider = (*Gemini)(nil)

// GeminiConfig holds configuration for the Gemini completion client.
type GeminiConfig struct {
	// APIKey is the Google AI API key (required).
	APIKey string

	// BaseURL overrides the API endpoint. Useful for testing.
	BaseURL string

	// Model is the completion model (default: gemini-1.5-flash-8b).
	Model string

	// Timeout bounds every completion request (default: 60s).
	Timeout time.Duration
}

// Gemini is a completion client for the Gemini generateContent API.
type Gemini struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

type geminiGenerateRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewGemini creates a new Gemini completion client.
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
	if cfg.Timeout == 0 {
		cfg.Timeout = GeminiDefaultTimeout
	}
	return &Gemini{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Name returns the provider identifier.
func (g *Gemini) Name() string { return "gemini/" + g.model }

// Complete sends one generateContent request. Gemini has no system role in
// this API version, so the system instruction is prepended to the prompt.
func (g *Gemini) Complete(ctx context.Context, system, user string, opts Options) (string, error) {
	prompt := user
	if system != "" {
		prompt = system + "\n\n" + user
	}
	reqBody := geminiGenerateRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: send request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}

	var genResp geminiGenerateResponse
	if err := json.Unmarshal(payload, &genResp); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if genResp.Error != nil {
		return "", fmt.Errorf("gemini: %s (%s)", genResp.Error.Message, genResp.Error.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: status %d: %s", resp.StatusCode, string(payload))
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}
	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
