package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/finadvisor/internal/config"
	"github.com/sandevgo/finadvisor/internal/service/setup"
	"github.com/sandevgo/finadvisor/pkg/log"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:          "init",
	Short:        "Create the runtime directory and its configuration",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		logger := log.FromCtx(ctx)
		runtimePath := config.GetRuntimePath()

		if _, err := setup.Run(runtimePath); err != nil {
			return err
		}

		envPath := filepath.Join(runtimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Setup complete! Run 'finadvisor start' to serve the advisor.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
