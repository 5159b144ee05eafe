package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/physlab/problem-relay/internal/config"
)

// cfg is populated before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "relay",
	Short:        "Physics problem parsing relay",
	Long:         "relay turns natural-language physics problems into structured parameters through a chat-completion API.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var envFiles []string
		if f, _ := cmd.Flags().GetString("env-file"); f != "" {
			envFiles = append(envFiles, f)
		}

		loaded, err := config.LoadConfig(envFiles...)
		if err != nil {
			return err
		}
		cfg = loaded
		setupLogging(cfg.Log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (defaults to ./.env when present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogging(c config.LogConfig) {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}

	var handler slog.Handler
	if c.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
