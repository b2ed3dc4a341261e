package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/haukgo/hauk-http/internal/locale"
	"github.com/haukgo/hauk-http/internal/model"
	"github.com/haukgo/hauk-http/internal/transport"
)

var h1 transport.Transport = transport.HTTP1{}

// Execute sends req and waits for the outcome. it never fails, errors of any
// kind end up in the returned [model.Response].
func (c *Client) Execute(ctx context.Context, req *model.Request) (resp *model.Response) {
	log := c.logger().With(zap.String("seq", uuid.NewString()))
	defer func() {
		if p := recover(); p != nil {
			log.Error("request panicked", zap.Any("panic", p))
			resp = model.Failure(fmt.Errorf("panic: %v", p))
		}
	}()

	log.Debug("sending request", zap.String("url", req.URL()), zap.Stringer("params", req.Parameters()))
	resp = c.execute(ctx, req, log)
	if resp.Failed() {
		log.Debug("request failed", zap.Error(resp.Err))
	} else {
		fields := []zap.Field{zap.Int("lines", len(resp.Data))}
		if resp.Version != nil {
			fields = append(fields, zap.String("version", resp.Version.String()))
		}
		log.Debug("request done", fields...)
	}
	return resp
}

// ExecuteAsync runs req on its own goroutine and posts cb to the client's
// foreground loop once it is done.
func (c *Client) ExecuteAsync(req *model.Request, cb Callback) {
	fg := c.foreground()
	go func() {
		resp := c.Execute(context.Background(), req)
		if cb != nil {
			fg.Post(func() { cb(resp) })
		}
	}()
}

func (c *Client) execute(ctx context.Context, req *model.Request, log *zap.Logger) *model.Response {
	lang := c.locale()
	pr, err := req.Prepare(c.baseHeader(lang))
	if err != nil {
		return model.Failure(err)
	}

	next := c.roundTrip
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		next = c.middlewares[i](next)
	}
	hr, err := next(ctx, pr)
	if err != nil {
		return model.Failure(err)
	}
	if hr.Body != nil {
		defer hr.Body.Close()
	}

	log.Debug("received response", zap.Int("status", hr.StatusCode), zap.String("proto", hr.Proto))
	if hr.StatusCode != http.StatusOK {
		return model.Failure(&model.StatusError{
			Code:    hr.StatusCode,
			Message: c.messages().ResponseCode(lang, hr.StatusCode),
		})
	}

	var lines []string
	if hr.Body != nil {
		if lines, err = readLines(hr.Body); err != nil {
			return model.Failure(err)
		}
	}
	return model.Success(lines, model.ParseVersion(hr.Header.Get(model.VersionHeader)))
}

func (c *Client) baseHeader(lang language.Tag) http.Header {
	return http.Header{
		"Accept-Language": {locale.Language(lang)},
		"User-Agent":      {c.userAgent()},
	}
}

// roundTrip is the innermost [Handler]: dial, write, read the header.
func (c *Client) roundTrip(ctx context.Context, pr *PreparedRequest) (*model.HTTPResponse, error) {
	conn, err := c.dial(ctx, pr)
	if err != nil {
		return nil, err
	}
	if rt := pr.Parameters().ReadTimeout; rt > 0 {
		if err := conn.SetDeadline(time.Now().Add(rt)); err != nil {
			conn.Close()
			return nil, err
		}
	}
	if err := h1.Write(conn, pr); err != nil {
		conn.Close()
		return nil, err
	}
	resp := &model.HTTPResponse{}
	if err := h1.Read(conn, pr, resp); err != nil {
		conn.Close()
		return nil, err
	}
	return resp, nil // closing the body closes conn
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// readLines splits a text body on LF, CRLF or a lone CR, without a trailing
// empty line. bytes that aren't valid UTF-8 become U+FFFD.
func readLines(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return []string{}, nil
	}
	s := lineEndings.Replace(string([]rune(string(b))))
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n"), nil
}
