package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/finadvisor/pkg/log"
)

type TelegramConfig struct {
	Token   string `env:"TELEGRAM_TOKEN,required,notEmpty"`
	OwnerID int64  `env:"TELEGRAM_OWNER_ID,required"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c, err := env.ParseAs[TelegramConfig]()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return &c
}
