package dialer

import (
	"context"
	"crypto/tls"
	"net"

	"github.com/haukgo/hauk-http/internal/model"
)

// Dialers handle pretty much everything related to the actual connection,
// including routing it through the request's proxy, resolving names and the
// TLS handshake under the request's TLS policy.
type Dialer interface {
	// Dial returns a connection ready for the request to be written to. the
	// caller owns the connection and closes it when the exchange is over.
	Dial(ctx context.Context, r *model.PreparedRequest) (net.Conn, error)
	Unwrap() Dialer
}

type CoreDialer struct {
	ResolveConfig *ResolveConfig

	TLSConfig *tls.Config // base config, cloned for every connection

	ProxyConfig *ProxyConfig
}

// Default returns the dialer used by a zero value Client.
func Default() *CoreDialer {
	return &CoreDialer{
		TLSConfig:   &tls.Config{MinVersion: tls.VersionTLS12},
		ProxyConfig: &ProxyConfig{},
	}
}

func (d *CoreDialer) Clone() *CoreDialer {
	return &CoreDialer{
		ResolveConfig: d.ResolveConfig.Clone(),
		TLSConfig:     d.TLSConfig.Clone(),
		ProxyConfig:   d.ProxyConfig.Clone(),
	}
}

func (d *CoreDialer) Unwrap() Dialer {
	return nil
}
