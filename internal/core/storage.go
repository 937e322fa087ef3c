package core

import "context"

type KnowledgeRepository interface {
	SaveChunks(ctx context.Context, chunks []KnowledgeChunk) error
	Search(ctx context.Context, vector []float32, limit int) ([]ScoredChunk, error)
	DeleteSource(ctx context.Context, source string) error
	ReplaceSource(ctx context.Context, source string, chunks []KnowledgeChunk) error
	Count(ctx context.Context) (int, error)
}

type QuoteCache interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte) error
}
