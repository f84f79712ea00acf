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

// Defaults for the Groq client. Groq serves the OpenAI chat-completions
// wire format.
const (
	GroqDefaultBaseURL = "https://api.groq.com/openai/v1"
	GroqDefaultModel   = "llama-3.1-8b-instant"
	GroqDefaultTimeout = 60 * time.Second
)

var _ Provider = (*Groq)(nil)

// GroqConfig holds configuration for the Groq completion client.
type GroqConfig struct {
	// APIKey is the Groq API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.groq.com/openai/v1).
	BaseURL string

	// Model is the completion model (default: llama-3.1-8b-instant).
	Model string

	// Timeout bounds every completion request (default: 60s).
	Timeout time.Duration
}

// Groq is a completion client for the Groq API.
type Groq struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

type groqChatRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewGroq creates a new Groq completion client.
func NewGroq(cfg GroqConfig) (*Groq, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = GroqDefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = GroqDefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = GroqDefaultTimeout
	}
	return &Groq{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Name returns the provider identifier.
func (g *Groq) Name() string { return "groq/" + g.model }

// Complete sends one chat-completion request.
func (g *Groq) Complete(ctx context.Context, system, user string, opts Options) (string, error) {
	reqBody := groqChatRequest{
		Model: g.model,
		Messages: []groqMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq: send request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("groq: read response: %w", err)
	}

	var chatResp groqChatResponse
	if err := json.Unmarshal(payload, &chatResp); err != nil {
		return "", fmt.Errorf("groq: decode response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("groq: %s", chatResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq: status %d: %s", resp.StatusCode, string(payload))
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("groq: no response choices returned")
	}
	return chatResp.Choices[0].Message.Content, nil
}
