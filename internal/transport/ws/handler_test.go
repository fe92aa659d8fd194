package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/nmarkin/roomcast/internal/core"
	"github.com/nmarkin/roomcast/internal/proto"
)

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()
	hub := core.NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := NewServer(hub, ":0", 102400, &logger)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func readText(t *testing.T, ctx context.Context, conn *websocket.Conn) string {
	t.Helper()

	typ, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if typ != websocket.MessageText {
		t.Fatalf("unexpected message type: %v", typ)
	}
	return string(data)
}

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWebSocketRegisterAndChat(t *testing.T) {
	ts := startTestServer(t)
	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/chat"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial A: %v", err)
	}
	defer connA.Close(websocket.StatusNormalClosure, "done")

	connB, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial B: %v", err)
	}
	defer connB.Close(websocket.StatusNormalClosure, "done")

	send := func(conn *websocket.Conn, line string) {
		if err := conn.Write(ctx, websocket.MessageText, []byte(line)); err != nil {
			t.Fatalf("write %q: %v", line, err)
		}
	}

	send(connA, "USER alice")
	if got := readText(t, ctx, connA); !strings.HasPrefix(got, proto.RespWelcome) {
		t.Fatalf("expected welcome, got %q", got)
	}
	send(connB, "USER bob")
	if got := readText(t, ctx, connB); !strings.HasPrefix(got, proto.RespWelcome) {
		t.Fatalf("expected welcome, got %q", got)
	}

	send(connA, "ROOM general")
	if got := readText(t, ctx, connA); got != proto.RespRoomCreated {
		t.Fatalf("expected room created, got %q", got)
	}
	send(connA, "JOIN general")
	if got := readText(t, ctx, connA); got != proto.RespJoined {
		t.Fatalf("expected join confirmation, got %q", got)
	}
	send(connB, "JOIN general")
	if got := readText(t, ctx, connB); got != proto.RespJoined {
		t.Fatalf("expected join confirmation, got %q", got)
	}
	if got := readText(t, ctx, connA); got != "bob joined general." {
		t.Fatalf("expected join notice for alice, got %q", got)
	}

	send(connA, "SEND general hi there")
	if got := readText(t, ctx, connB); got != "alice@general: hi there" {
		t.Fatalf("unexpected message for bob: %q", got)
	}
	if got := readText(t, ctx, connA); got != "You@general: hi there" {
		t.Fatalf("unexpected echo for alice: %q", got)
	}
}
