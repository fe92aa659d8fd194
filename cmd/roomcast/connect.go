package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmarkin/roomcast/internal/client"
	"github.com/nmarkin/roomcast/internal/config"
)

func newConnectCmd() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "start the interactive chat client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := client.Options{Addr: addr, DialTimeout: timeout}
			return client.Run(ctx, opts, os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost"+config.Default().Addr, "server address")
	cmd.Flags().DurationVar(&timeout, "timeout", config.Default().DialTimeout, "connect timeout")
	return cmd
}
