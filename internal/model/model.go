package model

import (
	"io"
	"net/http"
)

// VersionHeader carries the backend's protocol version on every response.
const VersionHeader = "X-Hauk-Version"

// HTTPResponse is a response as read off the wire, before it is turned into a
// [Response].
type HTTPResponse struct {
	Proto      string
	Status     string
	StatusCode int
	Header     http.Header

	ContentLength int64
	Body          io.ReadCloser
}
