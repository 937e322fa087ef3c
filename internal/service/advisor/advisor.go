package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/internal/finance"
	"github.com/sandevgo/finadvisor/internal/risk"
	"github.com/sandevgo/finadvisor/pkg/log"
)

// Query is a single advisory request. Projection and Profile are optional
// structured inputs; Text is the user's question.
type Query struct {
	Text       string                     `json:"text"`
	Projection *finance.ProjectionRequest `json:"projection,omitempty"`
	Profile    *risk.Profile              `json:"profile,omitempty"`
}

type Response struct {
	ID               uuid.UUID                 `json:"id"`
	Intent           Intent                    `json:"intent"`
	Narrative        string                    `json:"narrative"`
	Projection       *finance.ProjectionResult `json:"projection,omitempty"`
	Profile          *risk.Profile             `json:"profile,omitempty"`
	Allocation       []risk.Allocation         `json:"allocation,omitempty"`
	CitedChunks      []string                  `json:"cited_chunks"`
	ReducedContext   bool                      `json:"reduced_context"`
	GenerationFailed bool                      `json:"generation_failed"`
}

type Config struct {
	TopK             int
	RetrievalTimeout time.Duration
	MaxContextTokens int
	SystemPrompt     string
	Currency         string
}

func DefaultConfig() Config {
	return Config{
		TopK:             3,
		RetrievalTimeout: 3 * time.Second,
		MaxContextTokens: 1500,
		SystemPrompt:     DefaultSystemPrompt,
		Currency:         "INR",
	}
}

// Advisor merges computed figures with retrieved knowledge. The generator is
// optional; without one, answers are narrated from the figures and the
// retrieved passages directly.
type Advisor struct {
	retriever core.KnowledgeRetriever
	generator core.Generator
	cfg       Config
}

func New(retriever core.KnowledgeRetriever, generator core.Generator, cfg Config) *Advisor {
	def := DefaultConfig()
	if cfg.TopK <= 0 {
		cfg.TopK = def.TopK
	}
	if cfg.RetrievalTimeout <= 0 {
		cfg.RetrievalTimeout = def.RetrievalTimeout
	}
	if cfg.MaxContextTokens <= 0 {
		cfg.MaxContextTokens = def.MaxContextTokens
	}
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		cfg.SystemPrompt = def.SystemPrompt
	}
	if cfg.Currency == "" {
		cfg.Currency = def.Currency
	}
	return &Advisor{
		retriever: retriever,
		generator: generator,
		cfg:       cfg,
	}
}

// Advise answers a query. Invalid structured input is returned as a
// *core.InvalidInputError. Retrieval and generation failures never escape:
// they are reported through ReducedContext and GenerationFailed.
func (a *Advisor) Advise(ctx context.Context, q Query) (*Response, error) {
	logger := log.FromCtx(ctx)

	q.Text = strings.TrimSpace(q.Text)
	if q.Projection == nil {
		if req, ok := ExtractProjection(q.Text); ok {
			q.Projection = req
		}
	}
	if q.Text == "" && q.Projection == nil && q.Profile == nil {
		return nil, core.NewInvalidInput("text", "must not be empty")
	}

	resp := &Response{
		ID:          uuid.New(),
		Intent:      ClassifyIntent(q),
		CitedChunks: []string{},
	}
	logger.Debug().Str("id", resp.ID.String()).Stringer("intent", resp.Intent).Msg("advisory query classified")

	if err := a.compute(q, resp); err != nil {
		return nil, err
	}
	figures := describeFigures(resp, a.cfg.Currency)

	if resp.Intent == CalculationOnly {
		resp.Narrative = figures
		return resp, nil
	}

	var note string
	chunks, err := a.retrieve(ctx, q.Text)
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("retrieval degraded")
		resp.ReducedContext = true
		note = ReducedContextNote
	case len(chunks) == 0:
		logger.Debug().Msg("no passage passed the similarity floor")
		resp.ReducedContext = true
		note = EmptyContextNote
	}

	selected, _ := selectContext(chunks, a.cfg.MaxContextTokens)
	for _, c := range selected {
		resp.CitedChunks = append(resp.CitedChunks, c.Chunk.ID)
	}

	resp.Narrative = a.narrate(ctx, q, resp, figures, selected, note)
	return resp, nil
}

func (a *Advisor) compute(q Query, resp *Response) error {
	if q.Projection != nil {
		res, err := finance.ProjectSIP(q.Projection.WithDefaults())
		if err != nil {
			return err
		}
		resp.Projection = res
	}
	if q.Profile != nil {
		if !q.Profile.Valid() {
			return core.NewInvalidInput("profile", "unknown risk profile")
		}
		p := *q.Profile
		resp.Profile = &p
		resp.Allocation = p.Allocation()
	}
	return nil
}

type retrieval struct {
	chunks []core.ScoredChunk
	err    error
}

// retrieve bounds the retriever call by the configured timeout even when the
// retriever ignores context cancellation.
func (a *Advisor) retrieve(ctx context.Context, query string) ([]core.ScoredChunk, error) {
	if a.retriever == nil {
		return nil, core.ErrRetrievalUnavailable
	}

	rctx, cancel := context.WithTimeout(ctx, a.cfg.RetrievalTimeout)
	defer cancel()

	done := make(chan retrieval, 1)
	go func() {
		chunks, err := a.retriever.Retrieve(rctx, query, a.cfg.TopK)
		done <- retrieval{chunks: chunks, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, wrapRetrieval(r.err)
		}
		return r.chunks, nil
	case <-rctx.Done():
		return nil, wrapRetrieval(rctx.Err())
	}
}

func wrapRetrieval(err error) error {
	if errors.Is(err, core.ErrRetrievalUnavailable) {
		return err
	}
	return errors.Join(core.ErrRetrievalUnavailable, err)
}

func (a *Advisor) narrate(ctx context.Context, q Query, resp *Response, figures string, chunks []core.ScoredChunk, note string) string {
	var b strings.Builder

	if a.generator == nil {
		b.WriteString(offlineNarrative(figures, chunks))
	} else {
		prompt := BuildPrompt(a.cfg.SystemPrompt, q.Text, figures, chunks)
		text, err := a.generator.Generate(ctx, prompt)
		if err != nil {
			log.FromCtx(ctx).Error().Err(errors.Join(core.ErrGenerationFailed, err)).Msg("advisory generation failed")
			resp.GenerationFailed = true
			b.WriteString(failedNarrative(figures, chunks))
		} else {
			b.WriteString(text)
		}
	}

	if note != "" {
		b.WriteString("\n\n")
		b.WriteString(note)
	}
	return strings.TrimSpace(b.String())
}
