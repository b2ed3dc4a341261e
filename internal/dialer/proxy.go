package dialer

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"

	"github.com/haukgo/hauk-http/internal/model"
	"github.com/haukgo/hauk-http/internal/tlspolicy"
	"github.com/haukgo/hauk-http/internal/transport"
)

type ProxyConfig struct {
	TLSConfig      *tls.Config    // the [*tls.Config] to use with https proxies, if nil, *[CoreDialer.TLSConfig] will be used
	ResolveLocally bool           // resolve the target before asking an http proxy for a tunnel
	ResolveConfig  *ResolveConfig // overrides the resolver config of the dialer for proxied targets
}

func (c *ProxyConfig) Clone() *ProxyConfig {
	if c == nil {
		return nil
	}
	return &ProxyConfig{
		TLSConfig:      c.TLSConfig.Clone(),
		ResolveLocally: c.ResolveLocally,
		ResolveConfig:  c.ResolveConfig.Clone(),
	}
}

var h1Transport transport.Transport = transport.HTTP1{}

// DialContextOverProxy creates a connection to remote over an http, https,
// socks5 or socks5h proxy. This part of logic may be reused when wrapping
// *[CoreDialer] into a new custom [Dialer]
func (d *CoreDialer) DialContextOverProxy(ctx context.Context, remote, proxyU *url.URL) (net.Conn, error) {
	switch proxyU.Scheme {
	case "http", "https":
		return d.dialConnect(ctx, remote, proxyU)
	case "socks5", "socks5h":
		return d.dialSOCKS(ctx, remote, proxyU)
	}
	return nil, fmt.Errorf("%w: proxy %q", model.ErrUnsupportedScheme, proxyU.Scheme)
}

func proxyHostPort(proxyU *url.URL) string {
	host, port := splitHostPort(proxyU)
	return net.JoinHostPort(host, port)
}

// targetAddr is the address the proxy is asked to connect to. onion services
// only exist inside the proxy's network and are never resolved here.
func (d *CoreDialer) targetAddr(ctx context.Context, host, port string, resolveLocally bool) (string, error) {
	if !resolveLocally || tlspolicy.IsOnion(host) || net.ParseIP(host) != nil {
		return net.JoinHostPort(host, port), nil
	}
	var dnsCfg *ResolveConfig
	if d.ProxyConfig != nil && d.ProxyConfig.ResolveConfig != nil {
		dnsCfg = d.ProxyConfig.ResolveConfig.Merge(d.ResolveConfig)
	} else {
		dnsCfg = d.ResolveConfig
	}
	if dnsCfg != nil {
		if res, ok := dnsCfg.StaticHosts[host]; ok {
			return net.JoinHostPort(res, port), nil
		}
	}
	ips, err := d.lookup(ctx, dnsCfg, host)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	return net.JoinHostPort(ips[rand.Intn(len(ips))].String(), port), nil
}

func (d *CoreDialer) dialSOCKS(ctx context.Context, remote, proxyU *url.URL) (net.Conn, error) {
	host, port := splitHostPort(remote)
	// socks5h leaves name resolution to the proxy
	target, err := d.targetAddr(ctx, host, port, proxyU.Scheme == "socks5")
	if err != nil {
		return nil, err
	}

	var auth *proxy.Auth
	if u := proxyU.User; u != nil {
		pass, _ := u.Password()
		auth = &proxy.Auth{User: u.Username(), Password: pass}
	}
	sd, err := proxy.SOCKS5("tcp", proxyHostPort(proxyU), auth, &zeroDialer)
	if err != nil {
		return nil, err
	}
	cd, ok := sd.(proxy.ContextDialer)
	if !ok {
		return nil, errors.New("socks dialer does not support contexts")
	}
	return cd.DialContext(ctx, "tcp", target)
}

func (d *CoreDialer) dialConnect(ctx context.Context, remote, proxyU *url.URL) (net.Conn, error) {
	conn, err := zeroDialer.DialContext(ctx, "tcp", proxyHostPort(proxyU))
	if err != nil {
		return nil, err
	}

	if proxyU.Scheme == "https" {
		var tlsCfg *tls.Config
		if d.ProxyConfig != nil && d.ProxyConfig.TLSConfig != nil {
			tlsCfg = d.ProxyConfig.TLSConfig.Clone()
		} else if d.TLSConfig != nil {
			tlsCfg = d.TLSConfig.Clone()
		} else {
			tlsCfg = &tls.Config{}
		}
		tlsCfg.ServerName = proxyU.Hostname()
		c := tls.Client(conn, tlsCfg)
		if err := c.HandshakeContext(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		conn = c
	}

	return d.tunnel(ctx, conn, remote, proxyU)
}

// tunnelConn hands out what the proxy sent right after its reply before
// reading from the connection again.
type tunnelConn struct {
	net.Conn
	r *bufio.Reader
}

func (c *tunnelConn) Read(p []byte) (int, error) {
	return c.r.Read(p)
}

// tunnel asks the proxy behind conn for a tunnel to remote. conn is closed if
// that fails.
func (d *CoreDialer) tunnel(ctx context.Context, conn net.Conn, remote, proxyU *url.URL) (net.Conn, error) {
	host, port := splitHostPort(remote)
	resolveLocally := d.ProxyConfig != nil && d.ProxyConfig.ResolveLocally
	target, err := d.targetAddr(ctx, host, port, resolveLocally)
	if err != nil {
		conn.Close()
		return nil, err
	}

	connReq := &model.PreparedRequest{
		Method:        http.MethodConnect,
		HeaderHost:    net.JoinHostPort(host, port),
		U:             &url.URL{Opaque: target},
		GetBody:       func() (io.ReadCloser, error) { return http.NoBody, nil },
		ContentLength: -1,
	}
	if u := proxyU.User; u != nil {
		pass, _ := u.Password()
		connReq.Header = http.Header{
			"Proxy-Authorization": {"Basic " + base64.StdEncoding.EncodeToString([]byte(u.Username()+":"+pass))},
		}
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return nil, err
		}
	}
	if err := h1Transport.Write(conn, connReq); err != nil {
		conn.Close()
		return nil, err
	}
	br := bufio.NewReader(conn)
	resp := &model.HTTPResponse{}
	if err := h1Transport.Read(br, connReq, resp); err != nil {
		conn.Close()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		s, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		conn.Close()
		return nil, fmt.Errorf("proxy server returned error. status:%d, body:%s", resp.StatusCode, string(s))
	}
	if err := conn.SetDeadline(time.Time{}); err != nil {
		conn.Close()
		return nil, err
	}
	if br.Buffered() > 0 {
		return &tunnelConn{Conn: conn, r: br}, nil
	}
	return conn, nil
}
