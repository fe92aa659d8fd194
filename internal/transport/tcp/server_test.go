package tcp

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nmarkin/roomcast/internal/core"
	"github.com/nmarkin/roomcast/internal/proto"
)

func startTestServer(t *testing.T) string {
	t.Helper()

	logger := zerolog.Nop()
	hub := core.NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := NewServer(hub, "127.0.0.1:0", 102400, &logger)
	if err := srv.Listen(); err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = srv.Serve(ctx) }()

	return srv.Addr().String()
}

func dialTest(t *testing.T, addr string) net.Conn {
	t.Helper()

	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		t.Fatalf("dial %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func sendLine(t *testing.T, conn net.Conn, line string) {
	t.Helper()

	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		t.Fatalf("write %q: %v", line, err)
	}
}

// expectReply reads from the connection until the wanted text shows up.
// Responses are separate writes, so reads may coalesce or split them.
func expectReply(t *testing.T, conn net.Conn, want string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	var got strings.Builder
	buf := make([]byte, 4096)

	for time.Now().Before(deadline) {
		_ = conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		n, err := conn.Read(buf)
		if n > 0 {
			got.Write(buf[:n])
		}
		if strings.Contains(got.String(), want) {
			return
		}
		if err != nil && !errors.Is(err, os.ErrDeadlineExceeded) {
			break
		}
	}
	t.Fatalf("reply %q never arrived, received %q", want, got.String())
}

func TestChatScenario(t *testing.T) {
	addr := startTestServer(t)

	alice := dialTest(t, addr)
	sendLine(t, alice, "USER alice")
	expectReply(t, alice, proto.RespWelcome)

	sendLine(t, alice, "ROOM lobby")
	expectReply(t, alice, proto.RespRoomCreated)

	// A second client cannot take the same name, and the server stays up.
	impostor := dialTest(t, addr)
	sendLine(t, impostor, "USER alice")
	expectReply(t, impostor, proto.RespNameTaken)

	sendLine(t, alice, "JOIN lobby")
	expectReply(t, alice, proto.RespJoined)

	// Sole member: only the self echo comes back.
	sendLine(t, alice, "SEND lobby hello")
	expectReply(t, alice, "You@lobby: hello")
}

func TestMessageReachesPeer(t *testing.T) {
	addr := startTestServer(t)

	alice := dialTest(t, addr)
	sendLine(t, alice, "USER alice")
	expectReply(t, alice, proto.RespWelcome)
	sendLine(t, alice, "ROOM lobby")
	expectReply(t, alice, proto.RespRoomCreated)
	sendLine(t, alice, "JOIN lobby")
	expectReply(t, alice, proto.RespJoined)

	bob := dialTest(t, addr)
	sendLine(t, bob, "USER bob")
	expectReply(t, bob, proto.RespWelcome)
	sendLine(t, bob, "JOIN lobby")
	expectReply(t, bob, proto.RespJoined)
	expectReply(t, alice, "bob joined lobby.")

	sendLine(t, bob, "SEND lobby hi all")
	expectReply(t, bob, "You@lobby: hi all")
	expectReply(t, alice, "bob@lobby: hi all")
}

func TestUnregisteredCommandRejected(t *testing.T) {
	addr := startTestServer(t)

	conn := dialTest(t, addr)
	sendLine(t, conn, "JOIN lobby")
	expectReply(t, conn, proto.RespNotAuthenticated)
}

func TestExitClosesConnection(t *testing.T) {
	addr := startTestServer(t)

	conn := dialTest(t, addr)
	sendLine(t, conn, "USER alice")
	expectReply(t, conn, proto.RespWelcome)

	sendLine(t, conn, "EXIT")

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 256)
	for {
		_, err := conn.Read(buf)
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Fatalf("expected EOF after EXIT, got %v", err)
		}
	}
}

func TestDisconnectFreesName(t *testing.T) {
	addr := startTestServer(t)

	first := dialTest(t, addr)
	sendLine(t, first, "USER alice")
	expectReply(t, first, proto.RespWelcome)
	_ = first.Close()

	// Cleanup is asynchronous; retry until the name is available again.
	second := dialTest(t, addr)
	deadline := time.Now().Add(2 * time.Second)
	for {
		sendLine(t, second, "USER alice")

		_ = second.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		buf := make([]byte, 4096)
		n, err := second.Read(buf)
		if err != nil && !errors.Is(err, os.ErrDeadlineExceeded) {
			t.Fatalf("read: %v", err)
		}
		resp := string(buf[:n])
		if strings.Contains(resp, proto.RespWelcome) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("name never freed, last response %q", resp)
		}
		time.Sleep(50 * time.Millisecond)
	}
}
