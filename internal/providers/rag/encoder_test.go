package rag

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sandevgo/finadvisor/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

func TestHashEncoder_Deterministic(t *testing.T) {
	enc := NewHashEncoder(64)
	ctx := context.Background()

	a, err := enc.EncodeQuery(ctx, "What is a SIP?")
	require.NoError(t, err)
	b, err := enc.EncodePassage(ctx, "what is a sip")
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.InDelta(t, 1.0, math.Sqrt(dot(a, a)), 1e-5)
}

func TestHashEncoder_RelatedTextScoresHigher(t *testing.T) {
	enc := NewHashEncoder(DefaultHashDims)
	ctx := context.Background()

	q, _ := enc.EncodeQuery(ctx, "emergency fund months of expenses")
	related, _ := enc.EncodePassage(ctx, "An emergency fund should cover six months of expenses.")
	unrelated, _ := enc.EncodePassage(ctx, "Gold hedges against currency depreciation.")

	assert.Greater(t, dot(q, related), dot(q, unrelated))
}

func TestHashEncoder_EmptyText(t *testing.T) {
	vec, err := NewHashEncoder(0).EncodeQuery(context.Background(), "the and of")
	require.NoError(t, err)
	assert.Len(t, vec, DefaultHashDims)
	assert.Zero(t, dot(vec, vec))
}

func TestHashEncoder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHashEncoder(8).EncodeQuery(ctx, "sip")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOllamaEncoder(t *testing.T) {
	var got ollamaEmbedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"embedding":[0.5,-0.25,1]}`))
	}))
	defer srv.Close()

	enc := NewOllamaEncoder(srv.URL+"/", "nomic-embed-text", time.Second)
	vec, err := enc.EncodeQuery(context.Background(), "index funds")
	require.NoError(t, err)

	assert.Equal(t, []float32{0.5, -0.25, 1}, vec)
	assert.Equal(t, "nomic-embed-text", got.Model)
	assert.Equal(t, "search_query: index funds", got.Prompt)
}

func TestOllamaEncoder_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaEncoder(srv.URL, "missing", time.Second).EncodePassage(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestNewEncoder(t *testing.T) {
	enc, err := NewEncoder(&config.RAGConfig{Encoder: config.EncoderHash, HashDims: 32})
	require.NoError(t, err)
	assert.IsType(t, &HashEncoder{}, enc)

	enc, err = NewEncoder(&config.RAGConfig{Encoder: config.EncoderOllama, OllamaURL: "http://localhost:11434"})
	require.NoError(t, err)
	assert.IsType(t, &OllamaEncoder{}, enc)

	_, err = NewEncoder(&config.RAGConfig{Encoder: "word2vec"})
	assert.Error(t, err)
}

func TestChunkerConfigFrom(t *testing.T) {
	c := ChunkerConfigFrom(&config.RAGConfig{ChunkMaxTokens: 100, ChunkOverlapTokens: 10})
	assert.Equal(t, ChunkerConfig{MaxTokens: 100, OverlapTokens: 10}, c)

	c = ChunkerConfigFrom(&config.RAGConfig{ChunkMaxTokens: 0})
	assert.Equal(t, DefaultChunkerConfig(), c)
}
