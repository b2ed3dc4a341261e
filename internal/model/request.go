package model

import (
	"fmt"
	"net/url"
)

// Request describes a single POST to the backend. It is immutable once built,
// the form data is copied so later changes by the caller can't reach an
// exchange already in flight.
type Request struct {
	url    string
	data   Form
	params ConnectionParameters
}

func NewRequest(url string, data Form, params ConnectionParameters) *Request {
	return &Request{url: url, data: data.Clone(), params: params.clone()}
}

func (r *Request) URL() string                      { return r.url }
func (r *Request) Data() Form                       { return r.data.Clone() }
func (r *Request) Parameters() ConnectionParameters { return r.params.clone() }

// URLEncoded is the form encoding of the request data. it is used on the wire
// for every endpoint except [CreatePath] and when printing the request.
func (r *Request) URLEncoded() (string, error) {
	return EncodeForm(r.data)
}

// Body returns the payload and its content type, chosen by the endpoint the
// request targets.
func (r *Request) Body() ([]byte, string, error) {
	u, err := url.Parse(r.url)
	if err != nil {
		return nil, "", err
	}
	return r.body(u)
}

func (r *Request) body(u *url.URL) ([]byte, string, error) {
	if IsCreateEndpoint(u.Path) {
		b, err := EncodeJSON(r.data)
		return b, ContentTypeJSON, err
	}
	s, err := r.URLEncoded()
	return []byte(s), ContentTypeForm, err
}

func (r *Request) String() string {
	body, err := r.URLEncoded()
	if err != nil {
		body = "<invalid encoding>"
	}
	return fmt.Sprintf("Request{url=%s,body=%s,params=%s}", r.url, body, r.params)
}
