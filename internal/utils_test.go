package internal_test

import (
	"bufio"
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"

	"github.com/haukgo/hauk-http/internal"
	"github.com/haukgo/hauk-http/internal/dialer"
	"github.com/haukgo/hauk-http/internal/model"
)

// TestDialer hands out one end of a [net.Pipe] per Dial, Serve gets the other.
type TestDialer struct {
	Serve func(conn net.Conn)
	Err   error // returned by Dial instead of a connection
}

// Dial implements dialer.Dialer.
func (t *TestDialer) Dial(ctx context.Context, r *model.PreparedRequest) (net.Conn, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	client, server := net.Pipe()
	go func() {
		defer server.Close()
		t.Serve(server)
	}()
	return client, nil
}

// Unwrap implements dialer.Dialer.
func (t *TestDialer) Unwrap() dialer.Dialer {
	return nil
}

// captured is what the fake server saw of a request.
type captured struct {
	mu   sync.Mutex
	req  *http.Request
	body string
}

func (c *captured) get() (*http.Request, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.req, c.body
}

// respondWith reads one request off conn, records it into got and answers
// with the raw response.
func respondWith(raw string, got *captured) func(net.Conn) {
	return func(conn net.Conn) {
		req, err := http.ReadRequest(bufio.NewReader(conn))
		if err != nil {
			return
		}
		b, _ := io.ReadAll(req.Body)
		if got != nil {
			got.mu.Lock()
			got.req, got.body = req, string(b)
			got.mu.Unlock()
		}
		io.WriteString(conn, raw)
	}
}

func newTestClient(t *testing.T, serve func(net.Conn)) *internal.Client {
	t.Helper()
	c := &internal.Client{}
	c.UseDialer(func(dialer.Dialer) dialer.Dialer {
		return &TestDialer{Serve: serve}
	})
	return c
}
