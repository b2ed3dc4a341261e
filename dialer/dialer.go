package dialer

import (
	"github.com/haukgo/hauk-http/internal/dialer"
)

// Dialers are responsible for creating the connections requests are written to
// and responses are read from: a raw TCP connection, a tunnel through an HTTP
// or SOCKS5 proxy, with TLS on top for https.
//
// A Dialer MUST NOT hold on to connections, every exchange gets a fresh one
// and closes it when done. It SHOULD hold the connection related configs like
// [ProxyConfig] or *[crypto/tls.Config].
type Dialer = dialer.Dialer

// CoreDialer is the default implementation of the [Dialer] interface. It would
// be used by a zero value Client.
type CoreDialer = dialer.CoreDialer

type ProxyConfig = dialer.ProxyConfig

// we need a dedicated resolver for two scenarios:
//
//  1. Resolve remote address locally in proxied requests
//  2. to customize the DNS server used for resolving hostname
//
// the standard library doesn't provide an intuitive way of setting DNS server
// addresses since it only follows the system configuration (e.g.
// /etc/resolv.conf), leaving us only one option of using the
// [net.Resolver.Dial] hook with a Go Resolver.
type ResolveConfig = dialer.ResolveConfig

// Default returns the dialer a zero value Client uses.
func Default() *CoreDialer {
	return dialer.Default()
}
