package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/sandevgo/finadvisor/internal/config"
	"github.com/sandevgo/finadvisor/internal/service/command"
	"github.com/sandevgo/finadvisor/internal/service/knowledge"
	"github.com/sandevgo/finadvisor/internal/transport/httpapi"
	"github.com/sandevgo/finadvisor/internal/transport/telegram"
	"github.com/sandevgo/finadvisor/pkg/log"
	"github.com/sandevgo/finadvisor/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the HTTP API, the Telegram bot and the knowledge watcher",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := bootstrap(cmd)
		defer flushLog()

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting finadvisor")

		services, err := NewServices(ctx)
		if err != nil {
			return err
		}

		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("finadvisor has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func NewServices(ctx context.Context) ([]srv.Service, error) {
	logger := log.FromCtx(ctx)

	a, err := newApp(ctx)
	if err != nil {
		return nil, err
	}
	var services []srv.Service
	quotes := a.quotes(ctx)

	if a.rag.WatchKnowledge {
		w, err := knowledge.NewWatcher(a.cfg.GetKnowledgePath(), a.knowledge)
		if err != nil {
			logger.Warn().Err(err).Msg("knowledge watcher disabled")
		} else {
			services = append(services, w)
		}
	}

	if a.cfg.EnableHTTP {
		services = append(services, httpapi.NewServer(a.cfg.HTTPAddr, a.advisor, quotes, a.answerTimeout+10*time.Second))
	}

	if a.cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		router := command.New(command.NewCommands(a.cfg.Currency, quotes))
		bot, err := telegram.NewBot(ctx, tgCfg, a.advisor, router)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		services = append(services, bot)
	}

	if len(services) == 0 {
		logger.Warn().Msg("no transport enabled, set FIN_ENABLE_HTTP or FIN_ENABLE_TELEGRAM")
	}
	// shut down after the transports so in-flight requests can finish
	return append(services, a.cleanups...), nil
}
