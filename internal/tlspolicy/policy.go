// package tlspolicy decides, per connection, whether certificate and hostname
// checks are relaxed. hidden services are commonly served with self signed
// certificates since the onion address itself authenticates the server, so a
// user may opt out of the trust anchor check (and optionally the hostname
// check) for them. nothing else is ever relaxed.
package tlspolicy

import (
	"crypto/tls"
	"errors"
	"strings"

	"github.com/haukgo/hauk-http/internal/model"
)

const onionSuffix = ".onion"

type Decision struct {
	LaxCertificates bool // accept any certificate chain
	LaxHostname     bool // accept a certificate issued for any name
}

// IsOnion reports whether host is a hidden service address. host must not
// carry a port.
func IsOnion(host string) bool {
	host = strings.TrimSuffix(host, ".")
	return len(host) > len(onionSuffix) && strings.EqualFold(host[len(host)-len(onionSuffix):], onionSuffix)
}

// Resolve never fails, anything that is not an https request to an onion host
// under a relaxed policy gets the zero Decision.
func Resolve(host, scheme string, p model.TLSPolicy) Decision {
	if !strings.EqualFold(scheme, "https") || !IsOnion(host) {
		return Decision{}
	}
	switch p {
	case model.DisableTrustAnchorOnion:
		return Decision{LaxCertificates: true}
	case model.DisableAllOnion:
		return Decision{LaxCertificates: true, LaxHostname: true}
	}
	return Decision{}
}

var errNoPeerCertificate = errors.New("tls: server presented no certificate")

// Apply returns a copy of base for a connection to serverName with d in
// effect. base is never modified and may be nil.
func Apply(base *tls.Config, serverName string, d Decision) *tls.Config {
	config := base.Clone()
	if config == nil {
		config = &tls.Config{}
	}
	config.ServerName = serverName
	if !d.LaxCertificates {
		return config
	}

	// InsecureSkipVerify drops hostname verification along with the chain
	// check, it has to be done again by hand unless that's relaxed as well
	config.InsecureSkipVerify = true
	if d.LaxHostname {
		config.VerifyConnection = nil
		return config
	}
	config.VerifyConnection = func(cs tls.ConnectionState) error {
		if len(cs.PeerCertificates) == 0 {
			return errNoPeerCertificate
		}
		return cs.PeerCertificates[0].VerifyHostname(serverName)
	}
	return config
}
