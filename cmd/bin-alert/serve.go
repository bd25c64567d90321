package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/binalert/bin-alert/internal/config"
	"github.com/binalert/bin-alert/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schedule and calendar downloads over HTTP",
		RunE:  runServe,
	}

	cmd.Flags().String("listen", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.listen", cmd.Flags().Lookup("listen"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	p, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	slog.Info("Starting server", "listen", cfg.Listen, "provider", cfg.ProviderKind)
	return server.New(cfg.Listen, p).Run(cmd.Context())
}
