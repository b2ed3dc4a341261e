package dialer

import (
	"context"
	"crypto/tls"
	"net"
	"net/url"

	"github.com/haukgo/hauk-http/internal/model"
	"github.com/haukgo/hauk-http/internal/tlspolicy"
)

var schemes = map[string]string{
	"http": "80", "https": "443", "socks5": "1080", "socks5h": "1080",
}

var zeroDialer net.Dialer

func splitHostPort(u *url.URL) (host, port string) {
	host, port = u.Hostname(), u.Port()
	if port == "" {
		port = schemes[u.Scheme]
	}
	return host, port
}

// Dial connects to the request's target, through its proxy if it has one. the
// connect timeout of the request bounds everything up to a usable connection:
// the TCP connect, proxy negotiation and the TLS handshake.
func (d *CoreDialer) Dial(ctx context.Context, r *model.PreparedRequest) (net.Conn, error) {
	params := r.Parameters()
	if params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Timeout)
		defer cancel()
	}

	var (
		conn net.Conn
		err  error
	)
	host, port := splitHostPort(r.U)
	if params.Proxy != nil {
		conn, err = d.DialContextOverProxy(ctx, r.U, params.Proxy)
	} else {
		conn, err = d.dialDirect(ctx, host, port)
	}
	if err != nil {
		return nil, err
	}

	if r.U.Scheme == "https" {
		config := tlspolicy.Apply(d.TLSConfig, host, tlspolicy.Resolve(host, r.U.Scheme, params.TLSPolicy))
		c := tls.Client(conn, config)
		if err := c.HandshakeContext(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		conn = c
	}
	return conn, nil
}

func (d *CoreDialer) dialDirect(ctx context.Context, host, port string) (net.Conn, error) {
	cfg := d.ResolveConfig
	network, dialer, dst := cfg.tcpNetwork(), &zeroDialer, net.JoinHostPort(host, port)
	if cfg != nil {
		if static, ok := cfg.StaticHosts[host]; ok {
			dst = net.JoinHostPort(static, port)
		}
		if dns := cfg.CustomDNSServer; dns != "" {
			ctx = dnsServerCtx{ctx, dns}
			dialer = &customDNSDialer
		}
	}
	return dialer.DialContext(ctx, network, dst)
}
