package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nmarkin/roomcast/internal/app"
	"github.com/nmarkin/roomcast/internal/config"
	"github.com/nmarkin/roomcast/internal/log"
)

func newServeCmd() *cobra.Command {
	var (
		cfgPath  string
		addr     string
		httpAddr string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the chat server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootstrap := log.New(logLevel)
			cfg, path, err := config.Load(bootstrap, cfgPath)
			if err != nil {
				return err
			}

			// Flags win over file and environment.
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("http-addr") {
				cfg.HTTPAddr = httpAddr
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			logger := log.New(cfg.LogLevel)
			logger.Info().Str("config", path).Msg("configuration loaded")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.New(cfg, logger).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&addr, "addr", config.Default().Addr, "TCP listen address")
	cmd.Flags().StringVar(&httpAddr, "http-addr", "", "websocket transport listen address (disabled when empty)")
	cmd.Flags().StringVar(&logLevel, "log-level", config.Default().LogLevel, "log level (debug, info, warn, error)")
	return cmd
}
