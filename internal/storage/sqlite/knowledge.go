package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/pkg/log"
)

type KnowledgeRepo struct {
	db *sql.DB
}

func NewKnowledgeRepo(db *sql.DB) *KnowledgeRepo {
	return &KnowledgeRepo{db: db}
}

// SaveChunks upserts chunks in a single transaction.
func (r *KnowledgeRepo) SaveChunks(ctx context.Context, chunks []core.KnowledgeChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertChunks(ctx, tx, chunks); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceSource swaps every chunk of source for chunks atomically. On error
// the previous chunks stay in place.
func (r *KnowledgeRepo) ReplaceSource(ctx context.Context, source string, chunks []core.KnowledgeChunk) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM knowledge_chunks WHERE source = ?`, source); err != nil {
		return fmt.Errorf("failed to delete chunks of %s: %w", source, err)
	}
	if err := insertChunks(ctx, tx, chunks); err != nil {
		return err
	}
	return tx.Commit()
}

func insertChunks(ctx context.Context, tx *sql.Tx, chunks []core.KnowledgeChunk) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO knowledge_chunks (id, source, category, content, metadata, token_count, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			category = excluded.category,
			content = excluded.content,
			metadata = excluded.metadata,
			token_count = excluded.token_count,
			embedding = excluded.embedding`)
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if len(c.Embedding) == 0 {
			return fmt.Errorf("chunk %s has no embedding", c.ID)
		}
		vecBlob, err := serializeVector(c.Embedding)
		if err != nil {
			return err
		}
		meta, err := json.Marshal(c.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			c.ID, c.Source(), c.Metadata[core.MetaCategory], c.Text, string(meta), c.TokenCount, vecBlob,
		); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", c.ID, err)
		}
	}
	return nil
}

// Search ranks stored chunks by cosine similarity to vector and returns at
// most limit results in descending order. Chunks whose embedding dimension
// differs from the query are skipped.
func (r *KnowledgeRepo) Search(ctx context.Context, vector []float32, limit int) ([]core.ScoredChunk, error) {
	if limit <= 0 {
		return nil, core.NewInvalidInput("limit", "must be positive")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, content, metadata, token_count, embedding FROM knowledge_chunks`)
	if err != nil {
		return nil, fmt.Errorf("knowledge search failed: %w", err)
	}
	defer rows.Close()

	var results []core.ScoredChunk
	skipped := 0
	for rows.Next() {
		var (
			c    core.KnowledgeChunk
			meta string
			blob []byte
		)
		if err := rows.Scan(&c.ID, &c.Text, &meta, &c.TokenCount, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		emb, err := deserializeVector(blob)
		if err != nil {
			return nil, err
		}
		if len(emb) != len(vector) {
			skipped++
			continue
		}
		if err := json.Unmarshal([]byte(meta), &c.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata of %s: %w", c.ID, err)
		}
		c.Embedding = emb
		results = append(results, core.ScoredChunk{Chunk: c, Similarity: cosine(vector, emb)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if skipped > 0 {
		log.FromCtx(ctx).Debug().Int("skipped", skipped).Msg("chunks with mismatched embedding dimension")
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity == results[j].Similarity {
			return results[i].Chunk.ID < results[j].Chunk.ID
		}
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func (r *KnowledgeRepo) DeleteSource(ctx context.Context, source string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM knowledge_chunks WHERE source = ?`, source); err != nil {
		return fmt.Errorf("failed to delete chunks of %s: %w", source, err)
	}
	return nil
}

func (r *KnowledgeRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM knowledge_chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return n, nil
}

// Sources lists distinct chunk sources with their chunk counts.
func (r *KnowledgeRepo) Sources(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT source, COUNT(*) FROM knowledge_chunks GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			src string
			n   int
		)
		if err := rows.Scan(&src, &n); err != nil {
			return nil, err
		}
		out[src] = n
	}
	return out, rows.Err()
}
