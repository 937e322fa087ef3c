package rag

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDualEncoder is a test double for the DualEncoder interface.
type mockDualEncoder struct {
	encodeQueryFunc func(ctx context.Context, text string) ([]float32, error)
}

func (m *mockDualEncoder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	if m.encodeQueryFunc != nil {
		return m.encodeQueryFunc(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockDualEncoder) EncodePassage(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.4, 0.5, 0.6}, nil
}

func (m *mockDualEncoder) Shutdown() error { return nil }

type fakeRepo struct {
	chunks    []core.ScoredChunk
	err       error
	lastLimit int
}

func (f *fakeRepo) SaveChunks(ctx context.Context, chunks []core.KnowledgeChunk) error { return nil }
func (f *fakeRepo) DeleteSource(ctx context.Context, source string) error              { return nil }
func (f *fakeRepo) ReplaceSource(ctx context.Context, source string, chunks []core.KnowledgeChunk) error {
	return nil
}
func (f *fakeRepo) Count(ctx context.Context) (int, error) { return len(f.chunks), nil }

func (f *fakeRepo) Search(ctx context.Context, vector []float32, limit int) ([]core.ScoredChunk, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	out := append([]core.ScoredChunk(nil), f.chunks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func scored(n int) []core.ScoredChunk {
	out := make([]core.ScoredChunk, n)
	for i := range out {
		out[i] = core.ScoredChunk{
			Chunk:      core.KnowledgeChunk{ID: fmt.Sprintf("doc_%d", i)},
			Similarity: 0.9 - float64(i)*0.1,
		}
	}
	return out
}

func TestRetriever_AtMostKRankedDescending(t *testing.T) {
	repo := &fakeRepo{chunks: scored(8)}
	r := NewRetriever(&mockDualEncoder{}, repo, 0)

	results, err := r.Retrieve(context.Background(), "how much to save", 5)
	require.NoError(t, err)

	assert.Len(t, results, 5)
	assert.Equal(t, 5, repo.lastLimit)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
}

func TestRetriever_DropsBelowFloor(t *testing.T) {
	repo := &fakeRepo{chunks: scored(8)}
	r := NewRetriever(&mockDualEncoder{}, repo, 0.65)

	results, err := r.Retrieve(context.Background(), "gold", 5)
	require.NoError(t, err)

	// 0.9, 0.8, 0.7 pass the floor
	require.Len(t, results, 3)
	assert.Equal(t, "doc_0", results[0].Chunk.ID)
}

func TestRetriever_EmptyIsNotAnError(t *testing.T) {
	r := NewRetriever(&mockDualEncoder{}, &fakeRepo{}, 0.1)

	results, err := r.Retrieve(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = r.Retrieve(context.Background(), "   ", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetriever_InvalidK(t *testing.T) {
	r := NewRetriever(&mockDualEncoder{}, &fakeRepo{}, 0)

	for _, k := range []int{0, -1} {
		_, err := r.Retrieve(context.Background(), "sip", k)
		assert.True(t, core.IsInvalidInput(err), "k=%d", k)
	}
}

func TestRetriever_Failures(t *testing.T) {
	encErr := &mockDualEncoder{encodeQueryFunc: func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("encoder offline")
	}}
	_, err := NewRetriever(encErr, &fakeRepo{}, 0).Retrieve(context.Background(), "sip", 3)
	assert.ErrorIs(t, err, core.ErrRetrievalUnavailable)

	_, err = NewRetriever(&mockDualEncoder{}, &fakeRepo{err: errors.New("disk I/O")}, 0).Retrieve(context.Background(), "sip", 3)
	assert.ErrorIs(t, err, core.ErrRetrievalUnavailable)
}
