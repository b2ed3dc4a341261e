package tlspolicy_test

import (
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukgo/hauk-http/internal/model"
	"github.com/haukgo/hauk-http/internal/tlspolicy"
)

func TestIsOnion(t *testing.T) {
	cases := map[string]bool{
		"expyuzz4wqqyqhjn.onion":  true,
		"EXPYUZZ4WQQYQHJN.ONION":  true,
		"expyuzz4wqqyqhjn.onion.": true,
		"sub.abc.onion":           true,
		".onion":                  false,
		"onion":                   false,
		"example.com":             false,
		"onion.example.com":       false,
		"example.onions":          false,
		"":                        false,
	}
	for host, want := range cases {
		assert.Equal(t, want, tlspolicy.IsOnion(host), host)
	}
}

func TestResolve(t *testing.T) {
	const onion = "abcdefghijklmnop.onion"
	policies := []model.TLSPolicy{model.Strict, model.DisableTrustAnchorOnion, model.DisableAllOnion}

	for _, p := range policies {
		// non onion or plain http: always the default
		assert.Equal(t, tlspolicy.Decision{}, tlspolicy.Resolve("example.com", "https", p), p.String())
		assert.Equal(t, tlspolicy.Decision{}, tlspolicy.Resolve(onion, "http", p), p.String())
		assert.Equal(t, tlspolicy.Decision{}, tlspolicy.Resolve("", "", p), p.String())
	}

	assert.Equal(t, tlspolicy.Decision{}, tlspolicy.Resolve(onion, "https", model.Strict))
	assert.Equal(t, tlspolicy.Decision{LaxCertificates: true}, tlspolicy.Resolve(onion, "https", model.DisableTrustAnchorOnion))
	assert.Equal(t, tlspolicy.Decision{LaxCertificates: true, LaxHostname: true}, tlspolicy.Resolve(onion, "HTTPS", model.DisableAllOnion))
	assert.Equal(t, tlspolicy.Decision{}, tlspolicy.Resolve(onion, "https", model.TLSPolicy(42)))
}

func TestApplyDoesNotTouchBase(t *testing.T) {
	base := &tls.Config{MinVersion: tls.VersionTLS12}
	cfg := tlspolicy.Apply(base, "x.onion", tlspolicy.Decision{LaxCertificates: true, LaxHostname: true})

	assert.True(t, cfg.InsecureSkipVerify)
	assert.Equal(t, "x.onion", cfg.ServerName)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	assert.False(t, base.InsecureSkipVerify)
	assert.Empty(t, base.ServerName)

	strict := tlspolicy.Apply(nil, "example.com", tlspolicy.Decision{})
	require.NotNil(t, strict)
	assert.False(t, strict.InsecureSkipVerify)
	assert.Nil(t, strict.VerifyConnection)
}

// handshake against a server whose certificate is neither trusted nor issued
// for the name we ask for.
func handshake(t *testing.T, cfg *tls.Config) error {
	t.Helper()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	conn, err := tls.Dial("tcp", srv.Listener.Addr().String(), cfg)
	if err != nil {
		return err
	}
	return conn.Close()
}

func TestApplyHandshake(t *testing.T) {
	const host = "abcdefghijklmnop.onion"

	err := handshake(t, tlspolicy.Apply(nil, host, tlspolicy.Resolve(host, "https", model.Strict)))
	assert.Error(t, err)

	// a relaxed policy has no effect off the onion network
	err = handshake(t, tlspolicy.Apply(nil, "example.com", tlspolicy.Resolve("example.com", "https", model.DisableAllOnion)))
	var unknown x509.UnknownAuthorityError
	assert.ErrorAs(t, err, &unknown)

	err = handshake(t, tlspolicy.Apply(nil, host, tlspolicy.Resolve(host, "https", model.DisableTrustAnchorOnion)))
	var mismatch x509.HostnameError
	assert.ErrorAs(t, err, &mismatch)

	err = handshake(t, tlspolicy.Apply(nil, host, tlspolicy.Resolve(host, "https", model.DisableAllOnion)))
	assert.NoError(t, err)

	// the test certificate is issued for example.com, so only the trust anchor
	// is missing here
	err = handshake(t, tlspolicy.Apply(nil, "example.com", tlspolicy.Decision{LaxCertificates: true}))
	assert.NoError(t, err)
}
