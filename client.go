// Package hauk is the transport of a Hauk location sharing client: it POSTs
// form data to a Hauk backend, one connection per request, and hands back the
// response lines. .onion backends can be reached through a SOCKS5 proxy with
// certificate checks relaxed per request.
package hauk

import (
	"github.com/haukgo/hauk-http/internal"
	"github.com/haukgo/hauk-http/internal/dispatch"
	"github.com/haukgo/hauk-http/internal/model"
)

type Client = internal.Client
type Handler = internal.Handler
type Middleware = internal.Middleware
type Callback = internal.Callback

type Request = model.Request
type PreparedRequest = model.PreparedRequest
type HTTPResponse = model.HTTPResponse
type Response = model.Response
type Form = model.Form
type ConnectionParameters = model.ConnectionParameters
type TLSPolicy = model.TLSPolicy
type Version = model.Version
type StatusError = model.StatusError

// Loop delivers callbacks on a single goroutine, see [Client.Foreground].
type Loop = dispatch.Loop

const (
	Strict                  = model.Strict
	DisableTrustAnchorOnion = model.DisableTrustAnchorOnion
	DisableAllOnion         = model.DisableAllOnion

	VersionHeader = model.VersionHeader
)

var (
	ErrInvalidEncoding   = model.ErrInvalidEncoding
	ErrUnsupportedScheme = model.ErrUnsupportedScheme
)

var (
	NewRequest       = model.NewRequest
	FormOf           = model.FormOf
	FormFromMap      = model.FormFromMap
	ParseVersion     = model.ParseVersion
	MustParseVersion = model.MustParseVersion
	ParseTLSPolicy   = model.ParseTLSPolicy
	NewLoop          = dispatch.NewLoop
)
