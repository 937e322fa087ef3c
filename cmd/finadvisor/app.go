package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/finadvisor/internal/config"
	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/internal/providers/llm"
	"github.com/sandevgo/finadvisor/internal/providers/market"
	"github.com/sandevgo/finadvisor/internal/providers/rag"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/sandevgo/finadvisor/internal/service/knowledge"
	"github.com/sandevgo/finadvisor/internal/storage/bolt"
	"github.com/sandevgo/finadvisor/internal/storage/sqlite"
	"github.com/sandevgo/finadvisor/pkg/log"
	"github.com/sandevgo/finadvisor/pkg/retry"
	"github.com/sandevgo/finadvisor/pkg/srv"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg    *config.AppConfig
	rag    *config.RAGConfig
	market *config.MarketConfig

	db        *sql.DB
	embedder  *rag.Embedder
	knowledge *knowledge.Service
	advisor   *advisor.Advisor

	// answerTimeout bounds one advisory answer end to end
	answerTimeout time.Duration

	cleanups []srv.Service
}

func newApp(ctx context.Context) (*app, error) {
	a := &app{
		cfg:    config.NewAppConfig(ctx),
		rag:    config.NewRAGConfig(ctx),
		market: config.NewMarketConfig(ctx),
	}

	db, err := sqlite.NewDB(ctx, a.cfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.db = db
	a.cleanups = append(a.cleanups, srv.NewCleanup(db.Close))
	repo := sqlite.NewKnowledgeRepo(db)

	encoder, err := rag.NewEncoder(a.rag)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to initialize embedding encoder: %w", err)
	}
	a.embedder = rag.NewEmbedder(encoder, a.rag.EncodeTimeout, rag.ChunkerConfigFrom(a.rag))
	a.cleanups = append(a.cleanups, srv.NewCleanup(a.embedder.Shutdown))

	a.knowledge = knowledge.NewService(a.embedder, repo)
	if _, err := a.knowledge.Seed(ctx); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to seed knowledge base")
	}

	var generator core.Generator
	provider, err := llm.NewProvider(ctx, a.cfg)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	a.answerTimeout = a.rag.RetrievalTimeout
	if provider != nil {
		gen := llm.NewGenerator(provider, retry.NewDefaultRetrier(), a.cfg.GenerationTimeout)
		a.answerTimeout += gen.MaxDuration()
		generator = gen
	} else {
		log.FromCtx(ctx).Info().Msg("no language model configured, answers are narrated offline")
	}

	a.advisor = advisor.New(
		rag.NewRetriever(a.embedder, repo, a.rag.MinSimilarity),
		generator,
		advisor.Config{
			TopK:             a.rag.TopK,
			RetrievalTimeout: a.rag.RetrievalTimeout,
			MaxContextTokens: a.rag.MaxContextTokens,
			SystemPrompt:     advisor.LoadSystemPrompt(a.cfg.GetSystemPromptPath()),
			Currency:         a.cfg.Currency,
		},
	)
	return a, nil
}

// quotes opens the quote cache and builds the market client. The cache is
// optional: the client works without it when the file cannot be opened.
func (a *app) quotes(ctx context.Context) *market.Client {
	var cache core.QuoteCache
	c, err := bolt.NewCache(a.cfg.GetCachePath(), a.market.QuoteTTL)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("quote cache unavailable")
	} else {
		if n, err := c.Purge(); err == nil && n > 0 {
			log.FromCtx(ctx).Debug().Int("entries", n).Msg("purged expired quotes")
		}
		cache = c
		a.cleanups = append(a.cleanups, srv.NewCleanup(c.Close))
	}
	return market.NewClient(a.market.BaseURL, a.market.Timeout, cache, nil)
}

func (a *app) Close(ctx context.Context) {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		if err := a.cleanups[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("cleanup failed")
		}
	}
}
