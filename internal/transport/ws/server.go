// Package ws carries the same line protocol over websocket text messages,
// one command or response per message, plus a health route.
package ws

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/nmarkin/roomcast/internal/core"
)

// NewServer builds the HTTP server hosting the websocket transport.
func NewServer(hub *core.Hub, addr string, maxLineBytes int, logger *zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/chat", NewHandler(hub, maxLineBytes, logger))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	_, _ = fmt.Fprint(w, "ok")
}
