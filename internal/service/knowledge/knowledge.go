package knowledge

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/internal/providers/rag"
	"github.com/sandevgo/finadvisor/pkg/conv"
	"github.com/sandevgo/finadvisor/pkg/log"
)

// Extensions accepted by IngestFile.
var Extensions = []string{".md", ".txt", ".html", ".htm"}

type PassageEncoder interface {
	EncodePassage(ctx context.Context, text string) ([]rag.EmbeddedChunk, error)
}

// Service loads documents into the knowledge store.
type Service struct {
	encoder PassageEncoder
	repo    core.KnowledgeRepository
}

func NewService(encoder PassageEncoder, repo core.KnowledgeRepository) *Service {
	return &Service{encoder: encoder, repo: repo}
}

// Seed stores the built-in finance documents when the store is empty.
// It reports how many chunks were written.
func (s *Service) Seed(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count knowledge: %w", err)
	}
	if n > 0 {
		log.FromCtx(ctx).Debug().Int("chunks", n).Msg("knowledge store already populated, skipping seed")
		return 0, nil
	}

	var chunks []core.KnowledgeChunk
	for i, doc := range seedDocs {
		embedded, err := s.encoder.EncodePassage(ctx, doc.text)
		if err != nil {
			return 0, fmt.Errorf("failed to embed seed document %d: %w", i, err)
		}
		base := fmt.Sprintf("doc_%d", i)
		chunks = append(chunks, toChunks(base, embedded, doc.metadata)...)
	}

	if err := s.repo.SaveChunks(ctx, chunks); err != nil {
		return 0, fmt.Errorf("failed to save seed documents: %w", err)
	}
	log.FromCtx(ctx).Info().Int("chunks", len(chunks)).Msg("knowledge store seeded")
	return len(chunks), nil
}

// IngestFile replaces every chunk previously stored for path with the chunks
// of its current contents.
func (s *Service) IngestFile(ctx context.Context, path string) (int, error) {
	if !Supported(path) {
		return 0, core.NewInvalidInput("path", fmt.Sprintf("unsupported file type %q", filepath.Ext(path)))
	}

	text, err := readText(path)
	if err != nil {
		return 0, err
	}

	source := filepath.Clean(path)
	if strings.TrimSpace(text) == "" {
		if err := s.repo.DeleteSource(ctx, source); err != nil {
			return 0, fmt.Errorf("failed to drop old chunks of %s: %w", source, err)
		}
		return 0, nil
	}

	embedded, err := s.encoder.EncodePassage(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("failed to embed %s: %w", source, err)
	}

	meta := func() map[string]string {
		return map[string]string{
			core.MetaSource:   source,
			core.MetaCategory: category(path),
			core.MetaTopic:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		}
	}
	chunks := toChunks(source, embedded, meta)
	if err := s.repo.ReplaceSource(ctx, source, chunks); err != nil {
		return 0, fmt.Errorf("failed to save %s: %w", source, err)
	}

	log.FromCtx(ctx).Info().Str("source", source).Int("chunks", len(chunks)).Msg("document ingested")
	return len(chunks), nil
}

// IngestDir walks dir and ingests every supported file. A failing file is
// logged and skipped.
func (s *Service) IngestDir(ctx context.Context, dir string) (int, error) {
	total := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !Supported(path) {
			return nil
		}
		n, err := s.IngestFile(ctx, path)
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("path", path).Msg("failed to ingest file")
			return nil
		}
		total += n
		return nil
	})
	if err != nil {
		return total, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	return total, nil
}

// Remove drops every chunk stored for path.
func (s *Service) Remove(ctx context.Context, path string) error {
	return s.repo.DeleteSource(ctx, filepath.Clean(path))
}

func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return conv.HTMLToText(bytes.NewReader(data))
	default:
		return string(data), nil
	}
}

// category is the name of the directory holding the file.
func category(path string) string {
	dir := filepath.Base(filepath.Dir(path))
	if dir == "." || dir == string(filepath.Separator) {
		return "general"
	}
	return dir
}

func toChunks(base string, embedded []rag.EmbeddedChunk, meta func() map[string]string) []core.KnowledgeChunk {
	out := make([]core.KnowledgeChunk, 0, len(embedded))
	for _, e := range embedded {
		id := base
		if len(embedded) > 1 {
			id = fmt.Sprintf("%s#%d", base, e.Index)
		}
		out = append(out, core.KnowledgeChunk{
			ID:         id,
			Text:       e.Text,
			Embedding:  e.Embedding,
			Metadata:   meta(),
			TokenCount: e.TokenSize,
		})
	}
	return out
}
