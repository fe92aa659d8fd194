// Package client implements the interactive terminal chat client: naming
// handshake, prompt loop, and concurrent server reader.
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/nmarkin/roomcast/internal/proto"
)

const readBufSize = 4096

// Options configures a client session.
type Options struct {
	Addr        string
	DialTimeout time.Duration
}

// Run connects to the server and drives an interactive session until the
// user sends EXIT, the server goes away, or the context is cancelled.
func Run(ctx context.Context, opts Options, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Connecting to %s...\n", opts.Addr)
	conn, err := net.DialTimeout("tcp", opts.Addr, opts.DialTimeout)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", opts.Addr, err)
	}
	defer conn.Close()
	fmt.Fprintln(out, "Connected.")

	stdin := bufio.NewScanner(in)
	name, err := handshake(conn, stdin, out)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	errCh := make(chan error, 2)
	go func() {
		errCh <- readServer(conn, out, name)
	}()
	go func() {
		errCh <- sendInput(conn, stdin)
	}()

	err = <-errCh
	_ = conn.Close()
	<-errCh

	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// handshake prompts for a display name until the server accepts one.
func handshake(conn net.Conn, stdin *bufio.Scanner, out io.Writer) (string, error) {
	buf := make([]byte, readBufSize)
	for {
		fmt.Fprint(out, "Your name: ")
		if !stdin.Scan() {
			return "", io.EOF
		}
		name := strings.TrimSpace(stdin.Text())

		if _, err := fmt.Fprintf(conn, "%s %s\n", proto.VerbUser, name); err != nil {
			return "", fmt.Errorf("send name: %w", err)
		}
		n, err := conn.Read(buf)
		if err != nil {
			return "", fmt.Errorf("disconnected from server: %w", err)
		}

		resp := strings.TrimSpace(string(buf[:n]))
		fmt.Fprintln(out, resp)
		if strings.HasPrefix(resp, proto.WelcomePrefix) {
			prompt(out, name)
			return name, nil
		}
	}
}

// readServer prints everything the server pushes, redrawing the prompt.
func readServer(conn net.Conn, out io.Writer, name string) error {
	buf := make([]byte, readBufSize)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s\n", strings.TrimRight(string(buf[:n]), "\n"))
		prompt(out, name)
	}
}

// sendInput forwards console lines to the server. EXIT is sent along and
// then ends the session locally.
func sendInput(conn net.Conn, stdin *bufio.Scanner) error {
	for stdin.Scan() {
		line := stdin.Text()
		if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
			return err
		}
		if proto.IsExit(line) {
			return nil
		}
	}
	return stdin.Err()
}

func prompt(out io.Writer, name string) {
	fmt.Fprintf(out, "> %s $ ", name)
}
