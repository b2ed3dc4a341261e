package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/haukgo/hauk-http/internal/model"
	"github.com/haukgo/hauk-http/internal/transport/chunked"
)

// HTTP1 speaks HTTP/1.1 over a connection that serves exactly one exchange,
// every request asks the server to close the connection afterwards.
type HTTP1 struct{}

func (t HTTP1) Write(w io.Writer, r *model.PreparedRequest) error {
	body, err := r.GetBody()
	if err != nil {
		return err
	}
	if body != nil {
		defer body.Close() // request body is ALWAYS closed
	}

	bw := bufio.NewWriter(w) // default bufsize is 4096
	if err := t.writeHeader(bw, r); err != nil {
		return err
	}
	if body != nil {
		if _, err := io.Copy(bw, body); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writeHeader writes the request line and header part of an http 1.1 request
// e.g.:
//
//	POST /api/post.php HTTP/1.1\r\n
//	Host: hauk.example.com\r\n
//	Content-Length: 27\r\n
//	Connection: close\r\n
//	Content-Type: application/x-www-form-urlencoded\r\n
//	\r\n
func (t HTTP1) writeHeader(w *bufio.Writer, r *model.PreparedRequest) error {
	w.WriteString(r.Method)
	w.WriteByte(' ')
	w.WriteString(r.U.RequestURI())
	w.WriteString(" HTTP/1.1\r\n")

	w.WriteString("Host: ")
	w.WriteString(r.HeaderHost)
	w.WriteString("\r\n")
	if r.ContentLength != -1 {
		w.WriteString("Content-Length: ")
		w.WriteString(strconv.FormatInt(r.ContentLength, 10))
		w.WriteString("\r\n")
	}
	if r.Method != http.MethodConnect {
		w.WriteString("Connection: close\r\n")
	}
	for k, v := range r.Header {
		for _, v := range v {
			w.WriteString(k)
			w.WriteString(": ")
			w.WriteString(v)
			w.WriteString("\r\n")
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}

// Read parses the response to req. interim 1xx responses are skipped. the
// returned body closes r if r is an [io.Closer].
//
// if r is a *[bufio.Reader] it is read from directly, so whatever follows the
// response stays in it. a CONNECT tunnel relies on that.
func (t HTTP1) Read(r io.Reader, req *model.PreparedRequest, resp *model.HTTPResponse) error {
	closer := io.NopCloser
	if cr, ok := r.(io.Closer); ok {
		closer = func(r io.Reader) io.ReadCloser { return bodyCloser{r, cr.Close} }
	}
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	tp := textproto.NewReader(br)

	for {
		if err := t.readHeader(tp, resp); err != nil {
			return err
		}
		if resp.StatusCode < 100 || resp.StatusCode > 199 || resp.StatusCode == http.StatusSwitchingProtocols {
			break
		}
	}
	return t.readTransfer(tp.R, req, resp, closer)
}

func (t HTTP1) readHeader(tp *textproto.Reader, resp *model.HTTPResponse) error {
	line, err := tp.ReadLine()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	proto, status, ok := strings.Cut(line, " ")
	if !ok || !strings.HasPrefix(proto, "HTTP/") {
		return errors.New("malformed HTTP response " + strconv.Quote(line))
	}
	resp.Proto = proto
	resp.Status = strings.TrimLeft(status, " ")

	statusCode, _, _ := strings.Cut(resp.Status, " ")
	if len(statusCode) != 3 {
		return errors.New("malformed HTTP status code " + strconv.Quote(statusCode))
	}
	resp.StatusCode, err = strconv.Atoi(statusCode)
	if err != nil || resp.StatusCode < 0 {
		return errors.New("malformed HTTP status code " + strconv.Quote(statusCode))
	}

	mimeHeader, err := tp.ReadMIMEHeader()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	resp.Header = http.Header(mimeHeader)
	return nil
}

func (t HTTP1) readTransfer(r *bufio.Reader, req *model.PreparedRequest, resp *model.HTTPResponse, closer func(io.Reader) io.ReadCloser) error {
	contentLens := resp.Header["Content-Length"]

	// Hardening against HTTP request smuggling, taken from standard library
	if len(contentLens) > 1 {
		// Per RFC 7230 Section 3.3.2
		first := textproto.TrimString(contentLens[0])
		for _, ct := range contentLens[1:] {
			if first != textproto.TrimString(ct) {
				return fmt.Errorf("http: message cannot contain multiple Content-Length headers; got %q", contentLens)
			}
		}
		resp.Header.Set("Content-Length", first)
		contentLens = resp.Header["Content-Length"]
	}

	cl := int64(-1)
	if len(contentLens) > 0 {
		n, err := strconv.ParseUint(textproto.TrimString(contentLens[0]), 10, 63)
		if err != nil {
			return fmt.Errorf("http: bad Content-Length %q", contentLens[0])
		}
		cl = int64(n)
	}

	switch {
	case noResponseBody(req, resp.StatusCode):
		resp.ContentLength = 0
		resp.Body = http.NoBody
		if req.Method != http.MethodConnect {
			closer(nil).Close()
		}
	case strings.EqualFold(resp.Header.Get("Transfer-Encoding"), "chunked"):
		resp.Header.Del("Content-Length")
		resp.ContentLength = -1
		resp.Body = closer(chunked.NewReader(r))
	case cl == 0:
		resp.ContentLength = 0
		resp.Body = http.NoBody
		closer(nil).Close()
	case cl > 0:
		resp.ContentLength = cl
		resp.Body = closer(io.LimitReader(r, cl))
	default:
		// no framing, the server delimits the body by closing the connection
		resp.ContentLength = -1
		resp.Body = closer(r)
	}
	return nil
}

// a successful CONNECT hands the connection over to the tunnel, reading a
// body there would eat the tunneled bytes.
func noResponseBody(req *model.PreparedRequest, status int) bool {
	if req.Method == http.MethodConnect && status/100 == 2 {
		return true
	}
	return status == http.StatusNoContent || status == http.StatusNotModified || req.Method == http.MethodHead
}
