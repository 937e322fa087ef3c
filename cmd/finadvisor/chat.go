package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/sandevgo/finadvisor/internal/service/command"
	"github.com/sandevgo/finadvisor/internal/transport/cli"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the advisor in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := bootstrap(cmd)
		defer flushLog()

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		router := command.New(command.NewCommands(a.cfg.Currency, a.quotes(ctx)))

		chat, err := cli.NewChat(a.advisor, router, a.cfg.GetRuntimePath())
		if err != nil {
			return err
		}
		defer chat.Shutdown(ctx)

		if err := chat.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
