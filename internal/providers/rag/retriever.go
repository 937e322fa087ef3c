package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/pkg/log"
)

// Retriever implements core.KnowledgeRetriever on top of a vector repository.
type Retriever struct {
	encoder       core.QueryEncoder
	repo          core.KnowledgeRepository
	minSimilarity float64
}

func NewRetriever(encoder core.QueryEncoder, repo core.KnowledgeRepository, minSimilarity float64) *Retriever {
	return &Retriever{
		encoder:       encoder,
		repo:          repo,
		minSimilarity: minSimilarity,
	}
}

// Retrieve returns at most k chunks ranked by descending similarity. Chunks
// below the similarity floor are dropped, so the result may be empty.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]core.ScoredChunk, error) {
	if k <= 0 {
		return nil, core.NewInvalidInput("k", "must be a positive integer")
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	vec, err := r.encoder.EncodeQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRetrievalUnavailable, err)
	}

	found, err := r.repo.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRetrievalUnavailable, err)
	}

	results := make([]core.ScoredChunk, 0, len(found))
	for _, sc := range found {
		if sc.Similarity < r.minSimilarity {
			continue
		}
		results = append(results, sc)
		if len(results) == k {
			break
		}
	}

	log.FromCtx(ctx).Debug().
		Int("candidates", len(found)).
		Int("kept", len(results)).
		Msg("knowledge retrieved")

	return results, nil
}
