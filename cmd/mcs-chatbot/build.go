package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/answer"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/chunker"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/config"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/embedding"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/llm"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/retrieval"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/service"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/vectorstore/memory"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/vectorstore/qdrant"
)

// apiKey looks up the environment variable a component's key lives in.
func apiKey(envVar, component string) (string, error) {
	key := os.Getenv(envVar)
	if key == "" {
		return "", fmt.Errorf("%s: environment variable %s is not set", component, envVar)
	}
	return key, nil
}

func buildEmbedder(cfg *config.AppConfig) (domain.Embedder, error) {
	switch cfg.Embedder.Type {
	case "gemini":
		g := cfg.Embedder.Gemini
		key, err := apiKey(g.APIKeyEnv, "gemini embedder")
		if err != nil {
			return nil, err
		}
		emb, err := embedding.NewGemini(embedding.GeminiConfig{
			APIKey:    key,
			BaseURL:   g.BaseURL,
			Model:     g.Model,
			Dimension: g.Dimension,
			Timeout:   time.Duration(g.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		return emb, nil
	case "openai":
		o := cfg.Embedder.OpenAI
		if o == nil {
			return nil, fmt.Errorf("openai embedder config missing")
		}
		key, err := apiKey(o.APIKeyEnv, "openai embedder")
		if err != nil {
			return nil, err
		}
		emb, err := embedding.NewOpenAI(embedding.OpenAIConfig{
			APIKey:    key,
			BaseURL:   o.BaseURL,
			Model:     o.Model,
			Dimension: o.Dimension,
			Timeout:   time.Duration(o.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		return emb, nil
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}
}

func buildStore(cfg *config.AppConfig) (domain.VectorStore, error) {
	switch cfg.VectorStore.Type {
	case "memory":
		return memory.New(), nil
	case "qdrant":
		q := cfg.VectorStore.Qdrant
		var key string
		if q.APIKeyEnv != "" {
			key = os.Getenv(q.APIKeyEnv)
		}
		return qdrant.New(qdrant.Config{
			URL:        q.URL,
			APIKey:     key,
			Collection: q.Collection,
			Timeout:    time.Duration(q.TimeoutSecs) * time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}
}

func buildProviders(cfg *config.AppConfig) ([]llm.Provider, error) {
	providers := make([]llm.Provider, 0, len(cfg.Models))
	for _, m := range cfg.Models {
		key, err := apiKey(m.APIKeyEnv, m.Type+" model")
		if err != nil {
			return nil, err
		}
		timeout := time.Duration(m.TimeoutSecs) * time.Second
		switch m.Type {
		case "groq":
			p, err := llm.NewGroq(llm.GroqConfig{APIKey: key, BaseURL: m.BaseURL, Model: m.Model, Timeout: timeout})
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		case "gemini":
			p, err := llm.NewGemini(llm.GeminiConfig{APIKey: key, BaseURL: m.BaseURL, Model: m.Model, Timeout: timeout})
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		default:
			return nil, fmt.Errorf("unknown model type: %s", m.Type)
		}
	}
	return providers, nil
}

func buildChunker(cfg *config.AppConfig) (domain.Chunker, error) {
	c, err := chunker.NewWordChunker(cfg.Chunker.ChunkSizeWords, cfg.Chunker.OverlapWords)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func buildAssistant(ctx context.Context, cfg *config.AppConfig) (*service.Assistant, error) {
	emb, err := buildEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}
	// The store rejects searches until its dimension is fixed, so the query
	// path must initialize it just like ingestion does.
	if err := store.Init(ctx, emb.Dimension()); err != nil {
		return nil, err
	}
	providers, err := buildProviders(cfg)
	if err != nil {
		return nil, err
	}
	gen, err := answer.NewGenerator(providers...)
	if err != nil {
		return nil, err
	}
	retriever := retrieval.NewRetriever(emb, store,
		retrieval.WithThreshold(cfg.Retrieval.Threshold),
		retrieval.WithTopK(cfg.Retrieval.TopK),
	)
	return service.NewAssistant(retriever, gen), nil
}
