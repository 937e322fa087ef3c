package rag

import (
	"fmt"

	"github.com/sandevgo/finadvisor/internal/config"
)

func NewEncoder(cfg *config.RAGConfig) (DualEncoder, error) {
	switch cfg.Encoder {
	case config.EncoderHash, "":
		return NewHashEncoder(cfg.HashDims), nil
	case config.EncoderOllama:
		return NewOllamaEncoder(cfg.OllamaURL, cfg.EmbeddingModel, cfg.EncodeTimeout), nil
	default:
		return nil, fmt.Errorf("unknown embedding encoder: %s", cfg.Encoder)
	}
}

func ChunkerConfigFrom(cfg *config.RAGConfig) ChunkerConfig {
	c := ChunkerConfig{
		MaxTokens:     cfg.ChunkMaxTokens,
		OverlapTokens: cfg.ChunkOverlapTokens,
	}
	if c.Validate() != nil {
		return DefaultChunkerConfig()
	}
	return c
}
