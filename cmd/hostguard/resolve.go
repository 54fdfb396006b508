package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/hostguard/internal/config"
	"github.com/dmitrymomot/hostguard/pkg/hostresolver"
	"github.com/dmitrymomot/hostguard/pkg/metrics"
)

type resolveFlags struct {
	configPath     string
	host           string
	forwardedHost  string
	forwardedProto string
	peer           string
	serverName     string
	defaultHost    string
	trustedProxies []string
	allowedHosts   []string
	tls            bool
	trustForwarded bool
	asJSON         bool
}

func resolveCmd() *cobra.Command {
	var f resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a synthetic request offline",
		Long: `Resolve the origin of a request described by flags, using the
configured trust policy. Nothing is sent over the network.

Examples:
  hostguard resolve --host example.com
  hostguard resolve --peer 10.0.0.1 --forwarded-host app.example.com \
    --forwarded-proto https --trust-forwarded --trusted-proxy 10.0.0.0/8
  hostguard resolve --config hostguard.yaml --host evil.test --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}

			policy := cfg.Resolver
			flags := cmd.Flags()
			if flags.Changed("default-host") {
				policy.DefaultHost = f.defaultHost
			}
			if flags.Changed("trust-forwarded") {
				policy.TrustForwardedHeaders = f.trustForwarded
			}
			if flags.Changed("trusted-proxy") {
				policy.TrustedProxies = f.trustedProxies
			}
			if flags.Changed("allow") {
				policy.TrustedHostPatterns = f.allowedHosts
			}

			resolver, err := hostresolver.New(policy)
			if err != nil {
				return err
			}

			// Same server name the HTTP path injects, unless overridden.
			serverName := policy.ServerName
			if flags.Changed("server-name") {
				serverName = f.serverName
			}

			res := resolver.Resolve(hostresolver.RequestSignals{
				Peer:            f.peer,
				XForwardedProto: f.forwardedProto,
				XForwardedHost:  f.forwardedHost,
				Host:            f.host,
				Server:          serverName,
				TLS:             f.tls,
			})

			if f.asJSON {
				return writeResolutionJSON(cmd.OutOrStdout(), res)
			}
			writeResolution(cmd.OutOrStdout(), res)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "Path to a YAML config file")
	fl.StringVar(&f.host, "host", "", "Host header")
	fl.StringVar(&f.forwardedHost, "forwarded-host", "", "X-Forwarded-Host value")
	fl.StringVar(&f.forwardedProto, "forwarded-proto", "", "X-Forwarded-Proto value")
	fl.StringVar(&f.peer, "peer", "", "Immediate peer address (ip or ip:port)")
	fl.StringVar(&f.serverName, "server-name", "", "Override the configured server name")
	fl.BoolVar(&f.tls, "tls", false, "Connection arrived over TLS")
	fl.StringVar(&f.defaultHost, "default-host", "", "Override the configured default host")
	fl.BoolVar(&f.trustForwarded, "trust-forwarded", false, "Override the forwarded headers switch")
	fl.StringSliceVar(&f.trustedProxies, "trusted-proxy", nil, "Override trusted proxies (ip or cidr, repeatable)")
	fl.StringSliceVar(&f.allowedHosts, "allow", nil, "Override trusted host patterns (repeatable)")
	fl.BoolVar(&f.asJSON, "json", false, "Print the resolution as JSON")

	return cmd
}

type resolutionJSON struct {
	Scheme     string            `json:"scheme"`
	Host       string            `json:"host"`
	URL        string            `json:"url,omitempty"`
	Source     string            `json:"source"`
	Rejections []rejectionRecord `json:"rejections,omitempty"`
	Secure     bool              `json:"secure"`
	HasURL     bool              `json:"has_url"`
}

type rejectionRecord struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

func writeResolutionJSON(w io.Writer, res hostresolver.Resolution) error {
	out := resolutionJSON{
		Scheme: res.Host.Prefix,
		Host:   res.Host.Domain,
		URL:    res.URL,
		Source: string(res.Source),
		Secure: res.Secure,
		HasURL: res.HasURL,
	}
	for _, rej := range res.Rejections {
		out.Rejections = append(out.Rejections, rejectionRecord{
			Source: string(rej.Source),
			Reason: metrics.Reason(rej.Err),
			Error:  rej.Err.Error(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeResolution(w io.Writer, res hostresolver.Resolution) {
	url := res.URL
	if !res.HasURL {
		url = "(none)"
	}
	fmt.Fprintf(w, "  Scheme:  %s\n", res.Host.Prefix)
	fmt.Fprintf(w, "  Host:    %s\n", res.Host.Domain)
	fmt.Fprintf(w, "  Source:  %s\n", res.Source)
	fmt.Fprintf(w, "  URL:     %s\n", url)
	for _, rej := range res.Rejections {
		fmt.Fprintf(w, "  Rejected %s: %s\n", rej.Source, rej.Err)
	}
}
