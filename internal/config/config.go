package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/text/language"

	"github.com/haukgo/hauk-http/internal/dialer"
	"github.com/haukgo/hauk-http/internal/locale"
	"github.com/haukgo/hauk-http/internal/logging"
	"github.com/haukgo/hauk-http/internal/model"
)

// DefaultTimeout is the connect timeout when none is configured.
const DefaultTimeout = 10 * time.Second

// Config is the file and environment configuration of the client.
type Config struct {
	Timeout     time.Duration `yaml:"timeout"`
	ReadTimeout time.Duration `yaml:"read_timeout"` // 0 waits forever
	Proxy       string        `yaml:"proxy"`        // e.g. socks5h://127.0.0.1:9050 for Tor
	TLSPolicy   string        `yaml:"tls_policy"`   // STRICT, DISABLE_TRUST_ANCHOR_ONION or DISABLE_ALL_ONION
	Locale      string        `yaml:"locale"`       // empty follows the environment

	DNS struct {
		Server      string            `yaml:"server"`  // host:port
		Network     string            `yaml:"network"` // ip, ip4 or ip6
		StaticHosts map[string]string `yaml:"static_hosts"`
	} `yaml:"dns"`

	Log logging.Config `yaml:"log"`
}

func Default() Config {
	cfg := Config{
		Timeout:   DefaultTimeout,
		TLSPolicy: model.Strict.String(),
	}
	cfg.Log.Level = "info"
	cfg.Log.Mode = logging.ModeProduction
	cfg.Log.Encoding = logging.EncodingConsole
	return cfg
}

var proxySchemes = map[string]bool{"http": true, "https": true, "socks5": true, "socks5h": true}

func (c Config) Validate() error {
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if c.ReadTimeout < 0 {
		return errors.New("read_timeout must not be negative")
	}
	if _, err := c.proxyURL(); err != nil {
		return err
	}
	if _, err := model.ParseTLSPolicy(c.TLSPolicy); err != nil {
		return fmt.Errorf("invalid tls_policy: %w", err)
	}
	switch c.DNS.Network {
	case "", "ip", "ip4", "ip6":
	default:
		return fmt.Errorf("invalid dns.network %q", c.DNS.Network)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("invalid log config: %w", err)
	}
	return nil
}

func (c Config) proxyURL() (*url.URL, error) {
	if c.Proxy == "" {
		return nil, nil
	}
	u, err := url.Parse(c.Proxy)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy %q: %w", c.Proxy, err)
	}
	if !proxySchemes[u.Scheme] {
		return nil, fmt.Errorf("invalid proxy %q: %w", c.Proxy, model.ErrUnsupportedScheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("invalid proxy %q: missing host", c.Proxy)
	}
	return u, nil
}

// Parameters are the connection parameters requests are built with.
func (c Config) Parameters() (model.ConnectionParameters, error) {
	proxy, err := c.proxyURL()
	if err != nil {
		return model.ConnectionParameters{}, err
	}
	policy, err := model.ParseTLSPolicy(c.TLSPolicy)
	if err != nil {
		return model.ConnectionParameters{}, err
	}
	return model.ConnectionParameters{
		Timeout:     c.Timeout,
		ReadTimeout: c.ReadTimeout,
		Proxy:       proxy,
		TLSPolicy:   policy,
	}, nil
}

// ResolveConfig returns nil when the system resolver is good enough.
func (c Config) ResolveConfig() *dialer.ResolveConfig {
	if c.DNS.Server == "" && c.DNS.Network == "" && len(c.DNS.StaticHosts) == 0 {
		return nil
	}
	rc := &dialer.ResolveConfig{
		CustomDNSServer: c.DNS.Server,
		Network:         c.DNS.Network,
		StaticHosts:     map[string]string{},
	}
	for k, v := range c.DNS.StaticHosts {
		rc.StaticHosts[k] = v
	}
	return rc
}

func (c Config) LocaleTag() language.Tag {
	if c.Locale == "" {
		return locale.Default()
	}
	return locale.Parse(c.Locale)
}
