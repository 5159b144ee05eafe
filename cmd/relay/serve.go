package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/physlab/problem-relay/internal/llm"
	"github.com/physlab/problem-relay/internal/relay"
	"github.com/physlab/problem-relay/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parse-problem HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Server.Port = port
		}

		if cfg.DeepSeek.APIKeyConfigured() {
			slog.Info("DeepSeek API key configured", "key", cfg.DeepSeek.MaskedKey(), "endpoint", cfg.DeepSeek.Endpoint)
		} else {
			slog.Warn("DEEPSEEK_API_KEY is not set, parse requests will fail until it is configured")
		}

		svc := relay.New(llm.NewOpenAI(cfg.DeepSeek), cfg.DeepSeek.APIKeyConfigured())
		srv := server.New(*cfg, svc)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "Listen port (overrides SERVER_PORT)")
}
