package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/finadvisor/pkg/log"
)

const (
	EncoderHash   = "hash"
	EncoderOllama = "ollama"
)

type RAGConfig struct {
	Encoder        string        `env:"FIN_EMBEDDING_ENCODER" envDefault:"hash"`
	HashDims       int           `env:"FIN_EMBEDDING_DIMS" envDefault:"256"`
	OllamaURL      string        `env:"FIN_OLLAMA_URL" envDefault:"http://localhost:11434"`
	EmbeddingModel string        `env:"FIN_EMBEDDING_MODEL" envDefault:"nomic-embed-text"`
	EncodeTimeout  time.Duration `env:"FIN_EMBEDDING_TIMEOUT" envDefault:"10s"`

	TopK             int           `env:"FIN_RAG_TOP_K" envDefault:"3"`
	MinSimilarity    float64       `env:"FIN_RAG_MIN_SIMILARITY" envDefault:"0.1"`
	RetrievalTimeout time.Duration `env:"FIN_RAG_TIMEOUT" envDefault:"3s"`
	MaxContextTokens int           `env:"FIN_RAG_MAX_CONTEXT_TOKENS" envDefault:"1500"`

	ChunkMaxTokens     int `env:"FIN_CHUNK_MAX_TOKENS" envDefault:"300"`
	ChunkOverlapTokens int `env:"FIN_CHUNK_OVERLAP_TOKENS" envDefault:"40"`

	WatchKnowledge bool `env:"FIN_WATCH_KNOWLEDGE" envDefault:"true"`
}

func NewRAGConfig(ctx context.Context) *RAGConfig {
	cfg, err := env.ParseAs[RAGConfig]()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse RAG config")
	}
	return &cfg
}
