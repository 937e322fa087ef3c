package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/finadvisor/pkg/log"
)

type MarketConfig struct {
	BaseURL  string        `env:"FIN_MARKET_URL" envDefault:"https://query1.finance.yahoo.com"`
	Timeout  time.Duration `env:"FIN_MARKET_TIMEOUT" envDefault:"10s"`
	QuoteTTL time.Duration `env:"FIN_QUOTE_TTL" envDefault:"5m"`
}

func NewMarketConfig(ctx context.Context) *MarketConfig {
	cfg, err := env.ParseAs[MarketConfig]()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Market config")
	}
	return &cfg
}
