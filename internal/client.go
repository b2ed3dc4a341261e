package internal

import (
	"context"
	"net"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/haukgo/hauk-http/internal/dialer"
	"github.com/haukgo/hauk-http/internal/dispatch"
	"github.com/haukgo/hauk-http/internal/i18n"
	"github.com/haukgo/hauk-http/internal/locale"
	"github.com/haukgo/hauk-http/internal/model"
	"github.com/haukgo/hauk-http/internal/useragent"
)

type PreparedRequest = model.PreparedRequest
type Dialer = dialer.Dialer
type CoreDialer = dialer.CoreDialer

// Handler performs one exchange. the returned body has to be closed, closing
// it releases the connection.
type Handler = func(ctx context.Context, req *PreparedRequest) (*model.HTTPResponse, error)
type Middleware func(next Handler) Handler

// Callback receives the outcome of [Client.ExecuteAsync], exactly once.
type Callback func(*model.Response)

// Client sends requests to the backend, one connection per request. a zero
// Client is ready to use. configure it before the first request, it is not
// safe to change a Client while requests are in flight.
type Client struct {
	Logger *zap.Logger

	// Locale picks the language of Accept-Language and of the messages, it
	// defaults to [locale.Default].
	Locale   func() language.Tag
	Messages i18n.Messages

	// UserAgent overrides the full User-Agent header.
	UserAgent string

	// Foreground runs the callbacks of [Client.ExecuteAsync]. if nil, a loop
	// shared by all clients is started on first use.
	Foreground *dispatch.Loop

	middlewares []Middleware
	dialer      Dialer
}

var defaultForeground = sync.OnceValue(func() *dispatch.Loop {
	l := dispatch.NewLoop()
	l.Start()
	return l
})

// Use appends mws to the end of the chain. The first "Use"d mw is the
// outermost and sees the request first.
func (c *Client) Use(mws ...Middleware) {
	c.middlewares = append(c.middlewares, mws...)
}

// UseDialer replaces the dialer with the result of f, f receives the current
// one (a [dialer.Default] if none was set).
func (c *Client) UseDialer(f func(Dialer) Dialer) {
	c.dialer = f(c.getDialer())
}

// UseCoreDialer is like [Client.UseDialer], but f receives a copy of the
// *[CoreDialer] at the bottom of the current dialer chain. wrappers around it
// are replaced by whatever f returns.
func (c *Client) UseCoreDialer(f func(*CoreDialer) Dialer) {
	c.UseDialer(func(d Dialer) Dialer {
		for cd := d; cd != nil; cd = cd.Unwrap() {
			if core, ok := cd.(*CoreDialer); ok {
				return f(core.Clone())
			}
		}
		return f(dialer.Default())
	})
}

func (c *Client) getDialer() Dialer {
	if c.dialer == nil {
		return dialer.Default()
	}
	return c.dialer
}

func (c *Client) dial(ctx context.Context, req *PreparedRequest) (net.Conn, error) {
	return c.getDialer().Dial(ctx, req)
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Client) locale() language.Tag {
	if c.Locale == nil {
		return locale.Default()
	}
	return c.Locale()
}

func (c *Client) messages() i18n.Messages {
	if c.Messages == nil {
		return i18n.Default
	}
	return c.Messages
}

func (c *Client) userAgent() string {
	if c.UserAgent == "" {
		return useragent.String("")
	}
	return c.UserAgent
}

func (c *Client) foreground() *dispatch.Loop {
	if c.Foreground == nil {
		return defaultForeground()
	}
	return c.Foreground
}
