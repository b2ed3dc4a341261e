package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/haukgo/hauk-http/internal/model"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"HAUK_TIMEOUT", "HAUK_READ_TIMEOUT", "HAUK_PROXY", "HAUK_TLS_POLICY", "HAUK_LOCALE", "HAUK_LOG_LEVEL", "HAUK_DNS_SERVER"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "hauk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	params, err := cfg.Parameters()
	require.NoError(t, err)
	assert.Equal(t, model.ConnectionParameters{Timeout: DefaultTimeout}, params)
	assert.Nil(t, cfg.ResolveConfig())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, `
timeout: 30s
read_timeout: 1m
proxy: socks5h://127.0.0.1:9050
tls_policy: disable_all_onion
locale: nb_NO.UTF-8
dns:
  server: 9.9.9.9:53
  network: ip4
  static_hosts:
    hauk.example.com: 10.0.0.2
log:
  level: debug
  mode: development
`))
	require.NoError(t, err)

	params, err := cfg.Parameters()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, params.Timeout)
	assert.Equal(t, time.Minute, params.ReadTimeout)
	assert.Equal(t, "socks5h://127.0.0.1:9050", params.Proxy.String())
	assert.Equal(t, model.DisableAllOnion, params.TLSPolicy)
	assert.Equal(t, language.MustParse("nb-NO"), cfg.LocaleTag())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Encoding, "unset keys keep their defaults")

	rc := cfg.ResolveConfig()
	require.NotNil(t, rc)
	assert.Equal(t, "9.9.9.9:53", rc.CustomDNSServer)
	assert.Equal(t, "ip4", rc.Network)
	assert.Equal(t, map[string]string{"hauk.example.com": "10.0.0.2"}, rc.StaticHosts)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HAUK_TIMEOUT", "2s")
	t.Setenv("HAUK_READ_TIMEOUT", "3s")
	t.Setenv("HAUK_PROXY", "http://proxy.example.com:3128")
	t.Setenv("HAUK_TLS_POLICY", "DISABLE_TRUST_ANCHOR_ONION")
	t.Setenv("HAUK_LOCALE", "de_DE")
	t.Setenv("HAUK_LOG_LEVEL", "warn")
	t.Setenv("HAUK_DNS_SERVER", "1.1.1.1:53")

	cfg, err := Load(writeConfig(t, "timeout: 30s\ntls_policy: STRICT\n"))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, "http://proxy.example.com:3128", cfg.Proxy)
	assert.Equal(t, "DISABLE_TRUST_ANCHOR_ONION", cfg.TLSPolicy)
	assert.Equal(t, language.MustParse("de-DE"), cfg.LocaleTag())
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "1.1.1.1:53", cfg.ResolveConfig().CustomDNSServer)
}

func TestLoadErrors(t *testing.T) {
	for name, cas := range map[string]struct {
		file string
		env  map[string]string
	}{
		"Missing":         {file: "-"},
		"BadYAML":         {file: "timeout: [1"},
		"BadDuration":     {file: "timeout: soon"},
		"NegativeTimeout": {file: "timeout: -1s"},
		"BadPolicy":       {file: "tls_policy: LAX"},
		"ProxyScheme":     {file: "proxy: ftp://127.0.0.1:21"},
		"ProxyNoHost":     {file: "proxy: socks5://"},
		"DNSNetwork":      {file: "dns:\n  network: ipx"},
		"LogLevel":        {file: "log:\n  level: chatty"},
		"EnvTimeout":      {env: map[string]string{"HAUK_TIMEOUT": "ten"}},
		"EnvReadTimeout":  {env: map[string]string{"HAUK_READ_TIMEOUT": "ten"}},
		"EnvPolicy":       {env: map[string]string{"HAUK_TLS_POLICY": "nope"}},
	} {
		cas := cas
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range cas.env {
				t.Setenv(k, v)
			}
			path := ""
			switch cas.file {
			case "":
			case "-":
				path = filepath.Join(t.TempDir(), "missing.yaml")
			default:
				path = writeConfig(t, cas.file)
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestParametersAreIndependent(t *testing.T) {
	cfg := Default()
	cfg.Proxy = "socks5h://127.0.0.1:9050"
	a, err := cfg.Parameters()
	require.NoError(t, err)
	b, err := cfg.Parameters()
	require.NoError(t, err)
	a.Proxy.Host = "changed:1"
	assert.Equal(t, "127.0.0.1:9050", b.Proxy.Host)
}
