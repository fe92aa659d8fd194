package ws

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nmarkin/roomcast/internal/core"
	"github.com/nmarkin/roomcast/internal/proto"
)

// Handler upgrades HTTP connections and bridges them to the hub.
type Handler struct {
	hub          *core.Hub
	maxLineBytes int
	log          *zerolog.Logger
}

// NewHandler builds a new websocket chat handler.
func NewHandler(hub *core.Hub, maxLineBytes int, logger *zerolog.Logger) http.Handler {
	return &Handler{hub: hub, maxLineBytes: maxLineBytes, log: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")
	conn.SetReadLimit(int64(h.maxLineBytes))

	client := core.NewClient(uuid.NewString())
	h.hub.RegisterClient(client)
	defer h.hub.UnregisterClient(client)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel()
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
			h.log.Warn().Err(err).Str("client_id", client.ID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		line := string(data)
		if proto.IsExit(line) {
			return nil
		}
		h.hub.Submit(client, line)
	}
}

func (h *Handler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case text := <-client.Events:
			if err := conn.Write(ctx, websocket.MessageText, []byte(text)); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
