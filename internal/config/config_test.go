package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRAGConfigDefaults(t *testing.T) {
	cfg, err := env.ParseAs[RAGConfig]()
	require.NoError(t, err)

	assert.Equal(t, EncoderHash, cfg.Encoder)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, 3*time.Second, cfg.RetrievalTimeout)
	assert.InDelta(t, 0.1, cfg.MinSimilarity, 1e-9)
}

func TestRAGConfigFromEnv(t *testing.T) {
	t.Setenv("FIN_RAG_TOP_K", "5")
	t.Setenv("FIN_RAG_TIMEOUT", "750ms")
	t.Setenv("FIN_EMBEDDING_ENCODER", EncoderOllama)

	cfg, err := env.ParseAs[RAGConfig]()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 750*time.Millisecond, cfg.RetrievalTimeout)
	assert.Equal(t, EncoderOllama, cfg.Encoder)
}

func TestRuntimePath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "rt")
	t.Setenv("FIN_RUNTIME_PATH", abs)
	assert.Equal(t, abs, GetRuntimePath())

	t.Setenv("FIN_RUNTIME_PATH", "relative")
	assert.True(t, filepath.IsAbs(GetRuntimePath()) || GetRuntimePath() == "relative")
}

func TestAppConfigPaths(t *testing.T) {
	c := AppConfig{RuntimePath: "/srv/fin"}
	assert.Equal(t, "/srv/fin/knowledge.db", c.GetDatabasePath())
	assert.Equal(t, "/srv/fin/quotes.bolt", c.GetCachePath())
	assert.Equal(t, "/srv/fin/knowledge", c.GetKnowledgePath())
	assert.Equal(t, "/srv/fin/SYSTEM.md", c.GetSystemPromptPath())
}
