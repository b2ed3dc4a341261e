package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/haukgo/hauk-http/internal"
	"github.com/haukgo/hauk-http/internal/config"
	"github.com/haukgo/hauk-http/internal/dialer"
	"github.com/haukgo/hauk-http/internal/dispatch"
	"github.com/haukgo/hauk-http/internal/logging"
	"github.com/haukgo/hauk-http/internal/model"
	"github.com/haukgo/hauk-http/internal/useragent"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	config      string
	proxy       string
	timeout     time.Duration
	readTimeout time.Duration
	tlsPolicy   string
	locale      string
	logLevel    string
	dnsServer   string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "haukpost [flags] URL [key=value...]",
		Short: "Send one request to a Hauk backend",
		Long: `haukpost POSTs the given form fields to a Hauk backend endpoint and prints
the response lines. Requests to .../api/create are sent as JSON, everything
else as a urlencoded form.

Examples:
  haukpost https://hauk.example.com/api/create dur=3600 int=1
  haukpost --proxy socks5h://127.0.0.1:9050 --tls-policy DISABLE_ALL_ONION \
    https://abcdefghijklmnop.onion/api/post.php sid=abc lat=59.9 lon=10.7`,
		Version:       useragent.Version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "path to a YAML config file")
	fs.StringVar(&f.proxy, "proxy", "", "proxy URL (http, https, socks5, socks5h)")
	fs.DurationVar(&f.timeout, "timeout", config.DefaultTimeout, "connect timeout, 0 for none")
	fs.DurationVar(&f.readTimeout, "read-timeout", 0, "timeout for sending the request and reading the response, 0 for none")
	fs.StringVar(&f.tlsPolicy, "tls-policy", "", "STRICT, DISABLE_TRUST_ANCHOR_ONION or DISABLE_ALL_ONION")
	fs.StringVar(&f.locale, "locale", "", "locale for Accept-Language and messages, e.g. nb_NO")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&f.dnsServer, "dns-server", "", "host:port of a DNS server to use instead of the system one")
	return cmd
}

// flags set on the command line win over the config file and the environment.
func (f *flags) apply(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("proxy") {
		cfg.Proxy = f.proxy
	}
	if fs.Changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if fs.Changed("read-timeout") {
		cfg.ReadTimeout = f.readTimeout
	}
	if fs.Changed("tls-policy") {
		cfg.TLSPolicy = f.tlsPolicy
	}
	if fs.Changed("locale") {
		cfg.Locale = f.locale
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if fs.Changed("dns-server") {
		cfg.DNS.Server = f.dnsServer
	}
}

func parseForm(args []string) (model.Form, error) {
	var form model.Form
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return form, fmt.Errorf("invalid form field %q, expected key=value", a)
		}
		form.Set(k, v)
	}
	return form, nil
}

func run(cmd *cobra.Command, f *flags, args []string) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	f.apply(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	params, err := cfg.Parameters()
	if err != nil {
		return err
	}
	form, err := parseForm(args[1:])
	if err != nil {
		return err
	}

	lang := cfg.LocaleTag()
	client := &internal.Client{
		Logger:     log,
		Locale:     func() language.Tag { return lang },
		Foreground: dispatch.NewLoop(),
	}
	if rc := cfg.ResolveConfig(); rc != nil {
		client.UseCoreDialer(func(d *dialer.CoreDialer) dialer.Dialer {
			d.ResolveConfig = rc
			return d
		})
	}

	req := model.NewRequest(args[0], form, params)
	log.Debug("request", zap.Stringer("request", req))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	var resp *model.Response
	client.ExecuteAsync(req, func(r *model.Response) {
		resp = r
		cancel()
	})
	// callbacks run here, on the main goroutine
	client.Foreground.Run(ctx)
	if resp == nil {
		return errors.New("interrupted")
	}
	if resp.Failed() {
		return resp.Err
	}
	if resp.Version != nil {
		log.Info("backend version", zap.String("version", resp.Version.String()))
	}
	return printLines(cmd.OutOrStdout(), resp.Data)
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
