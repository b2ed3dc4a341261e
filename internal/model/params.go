package model

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// TLSPolicy controls whether certificate and hostname validation may be
// relaxed. Anything but Strict only applies to .onion hosts reached over https.
type TLSPolicy uint8

const (
	Strict TLSPolicy = iota
	DisableTrustAnchorOnion
	DisableAllOnion
)

var policyNames = [...]string{
	Strict:                  "STRICT",
	DisableTrustAnchorOnion: "DISABLE_TRUST_ANCHOR_ONION",
	DisableAllOnion:         "DISABLE_ALL_ONION",
}

func (p TLSPolicy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("TLSPolicy(%d)", uint8(p))
}

// ParseTLSPolicy is the inverse of [TLSPolicy.String], case-insensitive.
// an empty string is Strict.
func ParseTLSPolicy(s string) (TLSPolicy, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Strict, nil
	}
	for p, name := range policyNames {
		if strings.EqualFold(s, name) {
			return TLSPolicy(p), nil
		}
	}
	return Strict, fmt.Errorf("unknown tls policy %q", s)
}

func (p *TLSPolicy) UnmarshalText(text []byte) (err error) {
	*p, err = ParseTLSPolicy(string(text))
	return
}

func (p TLSPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type ConnectionParameters struct {
	Timeout     time.Duration // connect timeout, covers proxy negotiation and TLS handshake. 0 means none
	ReadTimeout time.Duration // deadline for writing the request and reading the response. 0 means none
	Proxy       *url.URL      // http, https, socks5 or socks5h. nil dials directly
	TLSPolicy   TLSPolicy
}

func (p ConnectionParameters) String() string {
	proxy := "DIRECT"
	if p.Proxy != nil {
		proxy = p.Proxy.Redacted()
	}
	return fmt.Sprintf("ConnectionParameters{timeout=%s,readTimeout=%s,proxy=%s,tlsPolicy=%s}",
		p.Timeout, p.ReadTimeout, proxy, p.TLSPolicy)
}

func (p ConnectionParameters) clone() ConnectionParameters {
	if p.Proxy != nil {
		u := *p.Proxy
		if p.Proxy.User != nil {
			ui := *p.Proxy.User
			u.User = &ui
		}
		p.Proxy = &u
	}
	return p
}
