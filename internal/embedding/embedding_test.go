package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
)

func TestOpenAIEmbedBatchOrdersByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openaiEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Input, 2)

		// Return embeddings out of order; the client must reorder by index.
		resp := map[string]any{
			"data": []map[string]any{
				{"embedding": []float64{0, 1, 0}, "index": 1},
				{"embedding": []float64{1, 0, 0}, "index": 0},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client, err := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL, Dimension: 3})
	require.NoError(t, err)

	vectors, err := client.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, vectors[0])
	assert.Equal(t, []float64{0, 1, 0}, vectors[1])
}

func TestOpenAIEmbedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limit exceeded", "type": "rate_limit"},
		})
	}))
	defer srv.Close()

	client, err := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL, Dimension: 3})
	require.NoError(t, err)

	_, err = client.Embed(context.Background(), "question")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestOpenAIDimensionMismatchIsNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float64{1, 2}, "index": 0}},
		})
	}))
	defer srv.Close()

	client, err := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL, Dimension: 3})
	require.NoError(t, err)

	_, err = client.Embed(context.Background(), "question")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Contains(t, err.Error(), "dimension")
}

func TestGeminiEmbedQueryTaskType(t *testing.T) {
	var gotTask string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/text-embedding-004:embedContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var req geminiEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotTask = req.TaskType

		json.NewEncoder(w).Encode(map[string]any{
			"embedding": map[string]any{"values": []float64{0.1, 0.2, 0.3}},
		})
	}))
	defer srv.Close()

	client, err := NewGemini(GeminiConfig{APIKey: "secret", BaseURL: srv.URL, Dimension: 3})
	require.NoError(t, err)

	v, err := client.Embed(context.Background(), "what is a quorum")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, v)
	assert.Equal(t, "RETRIEVAL_QUERY", gotTask)
}

func TestGeminiEmbedBatchTaskTypeAndCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/text-embedding-004:batchEmbedContents", r.URL.Path)

		var req geminiBatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 3)
		for _, part := range req.Requests {
			assert.Equal(t, "RETRIEVAL_DOCUMENT", part.TaskType)
		}

		embeddings := make([]map[string]any, len(req.Requests))
		for i := range embeddings {
			embeddings[i] = map[string]any{"values": []float64{float64(i), 0, 0}}
		}
		json.NewEncoder(w).Encode(map[string]any{"embeddings": embeddings})
	}))
	defer srv.Close()

	client, err := NewGemini(GeminiConfig{APIKey: "secret", BaseURL: srv.URL, Dimension: 3})
	require.NoError(t, err)

	vectors, err := client.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, []float64{2, 0, 0}, vectors[2])
}

func TestGeminiAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 403, "message": "API key invalid", "status": "PERMISSION_DENIED"},
		})
	}))
	defer srv.Close()

	client, err := NewGemini(GeminiConfig{APIKey: "bad", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Embed(context.Background(), "question")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Contains(t, err.Error(), "PERMISSION_DENIED")
}
