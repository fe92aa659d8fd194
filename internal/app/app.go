// Package app wires configuration, the hub, and the transports into a
// runnable service.
package app

import (
	"bufio"
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/nmarkin/roomcast/internal/config"
	"github.com/nmarkin/roomcast/internal/core"
	"github.com/nmarkin/roomcast/internal/log"
	"github.com/nmarkin/roomcast/internal/proto"
	"github.com/nmarkin/roomcast/internal/transport/tcp"
	"github.com/nmarkin/roomcast/internal/transport/ws"
)

// App holds the assembled service.
type App struct {
	cfg  config.Config
	hub  *core.Hub
	tcp  *tcp.Server
	http *stdhttp.Server
	log  *zerolog.Logger
}

// New constructs the application from configuration. The websocket transport
// is only built when an HTTP address is configured.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	hub := core.NewHub(log.Component(logger, "hub"))

	a := &App{
		cfg: cfg,
		hub: hub,
		tcp: tcp.NewServer(hub, cfg.Addr, cfg.MaxLineBytes, log.Component(logger, "tcp")),
		log: logger,
	}
	if cfg.HTTPAddr != "" {
		a.http = ws.NewServer(hub, cfg.HTTPAddr, cfg.MaxLineBytes, log.Component(logger, "ws"))
	}
	return a
}

// Addr returns the bound TCP listen address. Valid only while Run is active.
func (a *App) Addr() net.Addr {
	return a.tcp.Addr()
}

// Run starts the hub and transports and blocks until the context is
// cancelled, the operator types EXIT on the console, or a transport fails.
func (a *App) Run(ctx context.Context) error {
	if err := a.tcp.Listen(); err != nil {
		return err
	}
	a.log.Info().Str("addr", a.tcp.Addr().String()).Msg("chat server listening")

	// The hub outlives the transports so that disconnecting clients can
	// still unregister during shutdown.
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go a.hub.Run(hubCtx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.watchConsole(cancel)

	errCh := make(chan error, 2)
	go func() {
		errCh <- a.tcp.Serve(ctx)
	}()
	if a.http != nil {
		a.log.Info().Str("addr", a.http.Addr).Msg("websocket transport listening")
		go func() {
			err := a.http.ListenAndServe()
			if err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
				errCh <- err
				return
			}
			errCh <- nil
		}()
	}

	select {
	case err := <-errCh:
		cancel()
		a.shutdown()
		return err
	case <-ctx.Done():
		a.hub.Broadcast(nil, proto.RespServerStopping)
		a.shutdown()
		a.log.Info().Msg("server stopped")
		return nil
	}
}

// watchConsole implements the operator control input: an EXIT line on the
// server console stops the service. EOF means there is no console to watch.
func (a *App) watchConsole(cancel context.CancelFunc) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if proto.IsExit(sc.Text()) {
			a.log.Info().Msg("operator requested exit")
			cancel()
			return
		}
	}
}

func (a *App) shutdown() {
	if a.http == nil {
		return
	}

	sctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.http.Shutdown(sctx); err != nil {
		a.log.Warn().Err(err).Msg("http shutdown")
	}
}
