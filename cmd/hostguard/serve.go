package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/hostguard/internal/config"
	"github.com/dmitrymomot/hostguard/internal/server"
	"github.com/dmitrymomot/hostguard/middlewares"
	"github.com/dmitrymomot/hostguard/pkg/logger"
)

func serveCmd() *cobra.Command {
	var (
		configPath  string
		addr        string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Long: `Run the hostguard HTTP service.

Configuration is read from HOSTGUARD_* environment variables, then from
the optional YAML file. Flags override both.

Examples:
  hostguard serve
  hostguard serve --config hostguard.yaml
  hostguard serve --addr :9000 --metrics-addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Address = addr
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.MetricsAddress = metricsAddr
			}

			log := logger.New(cfg.Log,
				middlewares.RequestIDExtractor(),
				middlewares.OriginExtractor(),
			)

			return server.Run(cmd.Context(), cfg, log)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Metrics listen address (disabled when empty)")

	return cmd
}
