package model

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpguts"
)

// PreparedRequest is a [Request] resolved into everything the transport needs
// to put it on the wire.
type PreparedRequest struct {
	*Request

	Method     string
	U          *url.URL
	GetBody    func() (io.ReadCloser, error)
	Header     http.Header
	HeaderHost string

	ContentLength int64 // -1 if unknown
}

// Prepare validates the request and encodes its body. base holds headers
// shared by every request of a client, Content-Type is always overwritten.
func (r *Request) Prepare(base http.Header) (*PreparedRequest, error) {
	u, err := url.Parse(r.url)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	host := u.Host
	if host == "" {
		return nil, url.InvalidHostError("empty host")
	}
	if !httpguts.ValidHostHeader(host) {
		return nil, url.InvalidHostError(host)
	}

	headers := base.Clone()
	if headers == nil {
		headers = http.Header{}
	}
	for k, vv := range headers {
		if !httpguts.ValidHeaderFieldName(k) {
			return nil, fmt.Errorf("invalid header field name %q", k)
		}
		for _, v := range vv {
			if !httpguts.ValidHeaderFieldValue(v) {
				return nil, fmt.Errorf("invalid header field value for %q", k)
			}
		}
	}

	body, contentType, err := r.body(u)
	if err != nil {
		return nil, err
	}
	headers.Set("Content-Type", contentType)

	pr := &PreparedRequest{
		Request: r,

		Method:     http.MethodPost,
		U:          u,
		Header:     headers,
		HeaderHost: host,
	}
	pr.setBody(body)
	return pr, nil
}

// should only be called once at [Request.Prepare]. the body can be requested
// any number of times, each call gets a fresh reader.
func (r *PreparedRequest) setBody(b []byte) {
	r.ContentLength = int64(len(b))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(b)), nil
	}
}
