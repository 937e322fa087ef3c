package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/finadvisor/pkg/log"
)

// DualEncoder embeds queries and passages into the same vector space.
// Asymmetric models prefix the two kinds of input differently.
type DualEncoder interface {
	EncodeQuery(ctx context.Context, text string) ([]float32, error)
	EncodePassage(ctx context.Context, text string) ([]float32, error)
	Shutdown() error
}

// EmbeddedChunk is a document chunk with its passage embedding.
type EmbeddedChunk struct {
	Chunk
	Embedding []float32
}

type Embedder struct {
	model     DualEncoder
	timeout   time.Duration
	chunkConf ChunkerConfig
}

func NewEmbedder(model DualEncoder, timeout time.Duration, chunkConf ChunkerConfig) *Embedder {
	return &Embedder{
		model:     model,
		timeout:   timeout,
		chunkConf: chunkConf,
	}
}

func (e *Embedder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	vec, err := e.model.EncodeQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	return vec, nil
}

// EncodePassage chunks a document and embeds every chunk.
func (e *Embedder) EncodePassage(ctx context.Context, text string) ([]EmbeddedChunk, error) {
	chunks, err := ChunkText(text, e.chunkConf)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk passage: %w", err)
	}

	out := make([]EmbeddedChunk, 0, len(chunks))
	for _, c := range chunks {
		vec, err := e.encodeChunk(ctx, c.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to encode passage chunk %d: %w", c.Index, err)
		}
		out = append(out, EmbeddedChunk{Chunk: c, Embedding: vec})
	}

	log.FromCtx(ctx).Debug().Int("chunks", len(out)).Msg("passage embedded")
	return out, nil
}

func (e *Embedder) encodeChunk(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.model.EncodePassage(ctx, text)
}

func (e *Embedder) Shutdown() error {
	return e.model.Shutdown()
}
