// Package tcp serves the line protocol over plain TCP. Each accepted
// connection gets a read/write goroutine pair bridging it to the hub; the
// hub alone mutates chat state.
package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nmarkin/roomcast/internal/core"
	"github.com/nmarkin/roomcast/internal/proto"
)

// writeWait bounds a single response write so one stalled peer cannot pin
// its writer goroutine forever.
const writeWait = 10 * time.Second

// Server accepts chat connections and bridges them to the hub.
type Server struct {
	addr         string
	maxLineBytes int
	hub          *core.Hub
	log          *zerolog.Logger

	ln net.Listener
}

// NewServer builds a TCP chat server. Call Listen before Serve.
func NewServer(hub *core.Hub, addr string, maxLineBytes int, logger *zerolog.Logger) *Server {
	return &Server{
		addr:         addr,
		maxLineBytes: maxLineBytes,
		hub:          hub,
		log:          logger,
	}
}

// Listen binds the listening socket. A bind failure is the one startup error
// that is fatal to the process, so it surfaces to the caller.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.ln = ln
	return nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve accepts connections until the context is cancelled. Accept errors on
// a live listener are logged and skipped; they never stop the loop.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.ln.Close()
	}()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Warn().Err(err).Msg("accept failed")
			continue
		}

		s.log.Info().Str("peer", conn.RemoteAddr().String()).Msg("new connection")
		go s.handleConn(ctx, conn)
	}
}

// handleConn runs one connection from accept to teardown. Whatever ends the
// connection, the client is unregistered before the socket closes, so the
// hub's invariants are restored ahead of the next dispatch.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	client := core.NewClient(uuid.NewString())
	s.hub.RegisterClient(client)
	defer s.hub.UnregisterClient(client)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- s.readLoop(conn, client)
	}()
	go func() {
		errCh <- s.writeLoop(ctx, conn, client)
	}()

	err := <-errCh
	cancel()
	_ = conn.Close() // unblock the peer loop
	<-errCh

	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed), errors.Is(err, context.Canceled):
		s.log.Info().Str("client_id", client.ID).Msg("connection closed")
	default:
		s.log.Warn().Err(err).Str("client_id", client.ID).Msg("connection failed")
	}
}

// readLoop feeds command lines into the hub. EXIT is honored here, before
// any dispatch. A zero-length read or error means the peer is gone.
func (s *Server) readLoop(conn net.Conn, client *core.Client) error {
	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 4096), s.maxLineBytes)

	for sc.Scan() {
		line := sc.Text()
		if proto.IsExit(line) {
			return nil
		}
		s.hub.Submit(client, line)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return io.EOF
}

// writeLoop drains the client's event queue onto the socket. A write failure
// is treated like a disconnect: it ends the connection immediately.
func (s *Server) writeLoop(ctx context.Context, conn net.Conn, client *core.Client) error {
	for {
		select {
		case text := <-client.Events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if _, err := conn.Write([]byte(text + "\n")); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
