package transport

import (
	"io"

	"github.com/haukgo/hauk-http/internal/model"
)

type Transport interface {
	Write(w io.Writer, req *model.PreparedRequest) error
	Read(r io.Reader, req *model.PreparedRequest, resp *model.HTTPResponse) error
}

var _ Transport = HTTP1{}
