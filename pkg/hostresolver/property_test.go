package hostresolver_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dmitrymomot/hostguard/pkg/hostresolver"
)

// hostLike draws values ranging from valid hosts to hostile header payloads.
func hostLike() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(""),
		rapid.SampledFrom([]string{
			"example.com", "Example.COM:8080", "[::1]:443", "user:pass@evil.com",
			"http://evil.com", "evil.com/path", "evil.com\r\nX: y", " spaced.example ",
			"a.example, b.example", "::1", "a..b", "-x.com", "xn--bcher-kva.example",
		}),
		rapid.StringMatching(`[a-zA-Z0-9.:\-\[\]/@ ,]{0,40}`),
		rapid.String(),
	)
}

func drawSignals(t *rapid.T) hostresolver.RequestSignals {
	return hostresolver.RequestSignals{
		TLS:             rapid.Bool().Draw(t, "tls"),
		Peer:            rapid.SampledFrom([]string{"", "10.0.0.5:1000", "192.0.2.1:80", "[::1]:9", "junk"}).Draw(t, "peer"),
		XForwardedProto: rapid.SampledFrom([]string{"", "https", "http", "HTTPS, http", "ftp", "https\x00"}).Draw(t, "proto"),
		XForwardedHost:  hostLike().Draw(t, "forwarded_host"),
		Host:            hostLike().Draw(t, "host"),
		Server:          hostLike().Draw(t, "server"),
	}
}

func drawConfig(t *rapid.T) hostresolver.Config {
	cfg := hostresolver.Config{
		TrustForwardedHeaders: rapid.Bool().Draw(t, "trust_forwarded"),
		StripPort:             rapid.Bool().Draw(t, "strip_port"),
		DefaultHost:           rapid.SampledFrom([]string{"", "fallback.local", "fallback.local:8080"}).Draw(t, "default"),
	}
	if rapid.Bool().Draw(t, "has_proxies") {
		cfg.TrustedProxies = []string{"10.0.0.0/8", "::1"}
	}
	return cfg
}

func TestProperty_DomainInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := hostresolver.MustNew(drawConfig(t))
		s := drawSignals(t)

		domain := r.ServerHost(s).Domain
		if strings.ContainsAny(domain, "/@\\,") {
			t.Fatalf("domain %q contains forbidden characters", domain)
		}
		if strings.Contains(domain, "://") {
			t.Fatalf("domain %q contains a scheme", domain)
		}
		for _, c := range domain {
			if unicode.IsSpace(c) || unicode.IsControl(c) || c > unicode.MaxASCII {
				t.Fatalf("domain %q contains %q", domain, c)
			}
		}
		if domain != strings.ToLower(domain) {
			t.Fatalf("domain %q is not lowercase", domain)
		}

		url, ok := r.RequestURL(s)
		if ok != (domain != "") {
			t.Fatalf("RequestURL presence %v for domain %q", ok, domain)
		}
		if ok && url != r.ServerHost(s).Prefix+"://"+domain {
			t.Fatalf("url %q does not match server host", url)
		}
	})
}

func TestProperty_ForwardedIgnoredWhenSwitchedOff(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := drawConfig(t)
		cfg.TrustForwardedHeaders = false
		r := hostresolver.MustNew(cfg)

		with := drawSignals(t)
		without := with
		without.XForwardedHost = ""
		without.XForwardedProto = ""

		if r.IsHTTPSSecure(with) != r.IsHTTPSSecure(without) {
			t.Fatalf("IsHTTPSSecure depends on forwarded values: %+v", with)
		}
		if r.HTTPHost(with) != r.HTTPHost(without) {
			t.Fatalf("HTTPHost depends on forwarded values: %+v", with)
		}
	})
}

func TestProperty_TransportTLSDominates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := hostresolver.MustNew(drawConfig(t))
		s := drawSignals(t)
		s.TLS = true

		if !r.IsHTTPSSecure(s) {
			t.Fatalf("TLS request reported insecure: %+v", s)
		}
		if r.ServerHost(s).Prefix != "https" {
			t.Fatalf("TLS request got prefix %q", r.ServerHost(s).Prefix)
		}
	})
}

func TestProperty_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := hostresolver.MustNew(drawConfig(t))
		s := drawSignals(t)

		first := r.Resolve(s)
		second := r.Resolve(s)
		require.Equal(t, first, second)
		require.Equal(t, r.ServerHost(s), r.ServerHost(s))
	})
}
