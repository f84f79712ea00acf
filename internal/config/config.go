// Package config loads and saves the YAML application configuration.
// Secrets never live in the file: each credentialed component names the
// environment variable its API key is read from.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	ChunkSizeWords int `yaml:"chunk_size_words"`
	OverlapWords   int `yaml:"overlap_words"`
}

// GeminiEmbedderConfig holds configuration for the Gemini embedder.
type GeminiEmbedderConfig struct {
	BaseURL     string `yaml:"base_url,omitempty"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	Dimension   int    `yaml:"dimension"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	Dimension   int    `yaml:"dimension"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	Gemini *GeminiEmbedderConfig `yaml:"gemini,omitempty"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKeyEnv   string `yaml:"api_key_env,omitempty"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// ModelConfig configures one completion provider. Providers are tried in
// the order they appear in the models list; the first is the primary and
// the rest are fallbacks.
type ModelConfig struct {
	Type        string `yaml:"type"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	TimeoutSecs int    `yaml:"timeout_secs,omitempty"`
}

// RetrievalConfig configures the similarity search for answering.
type RetrievalConfig struct {
	Threshold float64 `yaml:"threshold"`
	TopK      int     `yaml:"top_k"`
}

// IngestConfig configures the ingestion pipeline.
type IngestConfig struct {
	Workers int `yaml:"workers"`
}

// ServerConfig configures the HTTP serving layer.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Models      []ModelConfig     `yaml:"models"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Server      ServerConfig      `yaml:"server"`
}

// Load reads a config from a specified path. A missing file is an error:
// an operator naming a path explicitly should hear that it was not found,
// not silently run on defaults. LoadDefault handles the no-config case.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/mcs-chatbot/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mcs-chatbot", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Chunker: ChunkerConfig{ChunkSizeWords: 500, OverlapWords: 50},
		Embedder: EmbedderConfig{
			Type: "gemini",
			Gemini: &GeminiEmbedderConfig{
				APIKeyEnv:   "GEMINI_API_KEY",
				Model:       "text-embedding-004",
				Dimension:   768,
				TimeoutSecs: 30,
			},
		},
		VectorStore: VectorStoreConfig{
			Type: "qdrant",
			Qdrant: &QdrantConfig{
				URL:         "http://localhost:6333",
				Collection:  "mcs_act_chunks",
				TimeoutSecs: 10,
			},
		},
		Models: []ModelConfig{
			{Type: "groq", APIKeyEnv: "GROQ_API_KEY", Model: "llama-3.1-8b-instant"},
			{Type: "gemini", APIKeyEnv: "GEMINI_API_KEY", Model: "gemini-1.5-flash-8b"},
		},
		Retrieval: RetrievalConfig{Threshold: 0.5, TopK: 3},
		Ingest:    IngestConfig{Workers: 4},
		Server:    ServerConfig{Addr: ":8080"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Chunker.ChunkSizeWords == 0 {
		cfg.Chunker.ChunkSizeWords = 500
	}
	if cfg.Chunker.OverlapWords == 0 && cfg.Chunker.ChunkSizeWords > 50 {
		cfg.Chunker.OverlapWords = 50
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "gemini"
	}
	if cfg.Embedder.Type == "gemini" {
		if cfg.Embedder.Gemini == nil {
			cfg.Embedder.Gemini = &GeminiEmbedderConfig{}
		}
		g := cfg.Embedder.Gemini
		if g.APIKeyEnv == "" {
			g.APIKeyEnv = "GEMINI_API_KEY"
		}
		if g.Model == "" {
			g.Model = "text-embedding-004"
		}
		if g.Dimension == 0 {
			g.Dimension = 768
		}
		if g.TimeoutSecs == 0 {
			g.TimeoutSecs = 30
		}
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		o := cfg.Embedder.OpenAI
		if o.BaseURL == "" {
			o.BaseURL = "https://api.openai.com/v1"
		}
		if o.APIKeyEnv == "" {
			o.APIKeyEnv = "OPENAI_API_KEY"
		}
		if o.Model == "" {
			o.Model = "text-embedding-3-small"
		}
		if o.Dimension == 0 {
			o.Dimension = 1536
		}
		if o.TimeoutSecs == 0 {
			o.TimeoutSecs = 30
		}
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "memory"
	}
	if cfg.VectorStore.Type == "qdrant" {
		if cfg.VectorStore.Qdrant == nil {
			cfg.VectorStore.Qdrant = &QdrantConfig{}
		}
		q := cfg.VectorStore.Qdrant
		if q.URL == "" {
			q.URL = "http://localhost:6333"
		}
		if q.Collection == "" {
			q.Collection = "mcs_act_chunks"
		}
		if q.TimeoutSecs == 0 {
			q.TimeoutSecs = 10
		}
	}
	if len(cfg.Models) == 0 {
		cfg.Models = defaultConfig().Models
	}
	for i := range cfg.Models {
		m := &cfg.Models[i]
		if m.APIKeyEnv == "" {
			switch m.Type {
			case "groq":
				m.APIKeyEnv = "GROQ_API_KEY"
			case "gemini":
				m.APIKeyEnv = "GEMINI_API_KEY"
			}
		}
	}
	if cfg.Retrieval.Threshold == 0 {
		cfg.Retrieval.Threshold = 0.5
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Ingest.Workers == 0 {
		cfg.Ingest.Workers = 4
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
}
