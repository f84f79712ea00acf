package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDefaultWritesAndReturnsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, path, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "mcs-chatbot", "config.yaml"), path)
	assert.FileExists(t, path)

	assert.Equal(t, 500, cfg.Chunker.ChunkSizeWords)
	assert.Equal(t, 50, cfg.Chunker.OverlapWords)
	assert.Equal(t, "gemini", cfg.Embedder.Type)
	require.NotNil(t, cfg.Embedder.Gemini)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Embedder.Gemini.APIKeyEnv)
	assert.Equal(t, 768, cfg.Embedder.Gemini.Dimension)

	require.Len(t, cfg.Models, 2)
	assert.Equal(t, "groq", cfg.Models[0].Type)
	assert.Equal(t, "gemini", cfg.Models[1].Type)

	assert.Equal(t, 0.5, cfg.Retrieval.Threshold)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
vector_store:
  type: qdrant
  qdrant:
    url: http://qdrant.internal:6333
models:
  - type: groq
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "qdrant", cfg.VectorStore.Type)
	assert.Equal(t, "http://qdrant.internal:6333", cfg.VectorStore.Qdrant.URL)
	assert.Equal(t, "mcs_act_chunks", cfg.VectorStore.Qdrant.Collection)
	assert.Equal(t, 10, cfg.VectorStore.Qdrant.TimeoutSecs)

	require.Len(t, cfg.Models, 1)
	assert.Equal(t, "GROQ_API_KEY", cfg.Models[0].APIKeyEnv)

	assert.Equal(t, 500, cfg.Chunker.ChunkSizeWords)
	assert.Equal(t, "gemini", cfg.Embedder.Type)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg := defaultConfig()
	cfg.Retrieval.TopK = 7
	cfg.VectorStore.Type = "memory"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Retrieval.TopK)
	assert.Equal(t, "memory", loaded.VectorStore.Type)
}
