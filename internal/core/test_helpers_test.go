package core

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nmarkin/roomcast/internal/proto"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func startHub(t *testing.T) *Hub {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := NewHub(testLogger())
	go h.Run(ctx)
	return h
}

func nextEvent(t *testing.T, ch <-chan string) string {
	t.Helper()

	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("no event received within deadline")
	}
	return ""
}

func expectEvent(t *testing.T, ch <-chan string, want string) {
	t.Helper()

	if got := nextEvent(t, ch); got != want {
		t.Fatalf("unexpected event:\n got %q\nwant %q", got, want)
	}
}

func expectQuiet(t *testing.T, ch <-chan string) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("expected no event, got %q", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func mustRegister(t *testing.T, h *Hub, c *Client, name string) {
	t.Helper()

	h.RegisterClient(c)
	h.Submit(c, "USER "+name)
	ev := nextEvent(t, c.Events)
	if !strings.HasPrefix(ev, proto.RespWelcome) {
		t.Fatalf("registration of %q failed: %q", name, ev)
	}
}
