package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/finadvisor/internal/config"
	"github.com/sandevgo/finadvisor/internal/providers/mcp"
	"github.com/sandevgo/finadvisor/pkg/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the calculators and the advisor as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol, so logs go to stderr
		ctx, flushLog := log.NewContextWithLoggerTo(cmd.Context(), debug || config.IsDebug(), os.Stderr)
		defer flushLog()
		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		return mcp.NewServer(a.advisor, a.cfg.Currency).ServeStdio(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
