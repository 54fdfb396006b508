package hostresolver

import (
	"fmt"
	"net/http"
	"strings"
)

// Resolver derives a trustworthy scheme and host from request signals.
// It is immutable after New and safe for concurrent use.
type Resolver struct {
	defaultHost    string
	serverName     string
	protoHeader    string
	hostHeader     string
	proxies        proxySet
	hosts          allowList
	maxLen         int
	trustForwarded bool
	parseForwarded bool
	stripPort      bool
}

// New validates cfg and builds a Resolver.
// Invalid proxies, patterns or a default host that would not itself pass
// resolution are reported here, never at request time.
func New(cfg Config) (*Resolver, error) {
	cfg = cfg.withDefaults()

	proxies, err := parseProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	hosts, err := compilePatterns(cfg.TrustedHostPatterns)
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		serverName:     strings.TrimSpace(cfg.ServerName),
		protoHeader:    cfg.ForwardedProtoHeader,
		hostHeader:     cfg.ForwardedHostHeader,
		proxies:        proxies,
		hosts:          hosts,
		maxLen:         cfg.MaxHostLength,
		trustForwarded: cfg.TrustForwardedHeaders,
		parseForwarded: cfg.ParseForwarded,
		stripPort:      cfg.StripPort,
	}

	if strings.TrimSpace(cfg.DefaultHost) != "" {
		host, err := r.accept(cfg.DefaultHost)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidDefaultHost, cfg.DefaultHost, err)
		}
		r.defaultHost = host
	}

	return r, nil
}

// MustNew is like New but panics on invalid configuration.
func MustNew(cfg Config) *Resolver {
	r, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return r
}

// IsHTTPSSecure reports whether the request arrived over HTTPS.
// Transport TLS always wins. Otherwise the forwarded protocol decides, and
// only when forwarded headers are enabled and the peer is a trusted proxy.
func (r *Resolver) IsHTTPSSecure(s Signals) bool {
	return r.secure(s, nil)
}

// HTTPHost returns the sanitized host of the request, trying the forwarded
// host (trusted proxies only), the Host header and the server name in turn,
// then the configured default. It may return "" only when the default is empty.
func (r *Resolver) HTTPHost(s Signals) string {
	host, _ := r.host(s, nil)
	return host
}

// ServerHost returns the protocol prefix and sanitized host of the request.
func (r *Resolver) ServerHost(s Signals) ResolvedHost {
	return ResolvedHost{
		Prefix: prefix(r.IsHTTPSSecure(s)),
		Domain: r.HTTPHost(s),
	}
}

// RequestURL returns "{prefix}://{domain}" for the request. The boolean is
// false when no trustworthy host is available; callers must not fabricate a
// URL in that case.
func (r *Resolver) RequestURL(s Signals) (string, bool) {
	return r.ServerHost(s).URL()
}

// Resolve computes every derivation in one pass and records which source won
// and which candidates were demoted.
func (r *Resolver) Resolve(s Signals) Resolution {
	var rej rejections
	secure := r.secure(s, &rej)
	domain, src := r.host(s, &rej)

	host := ResolvedHost{Prefix: prefix(secure), Domain: domain}
	url, ok := host.URL()

	return Resolution{
		Host:       host,
		Source:     src,
		URL:        url,
		HasURL:     ok,
		Secure:     secure,
		Rejections: rej,
	}
}

// Signals snapshots req using the configured header names and server name.
func (r *Resolver) Signals(req *http.Request) RequestSignals {
	return FromHTTPRequest(req,
		WithForwardedHeaders(r.protoHeader, r.hostHeader),
		WithServerName(r.serverName),
		WithRFC7239(r.parseForwarded),
	)
}

// Request resolves req. It is shorthand for r.Resolve(r.Signals(req)).
func (r *Resolver) Request(req *http.Request) Resolution {
	return r.Resolve(r.Signals(req))
}

func (r *Resolver) proxyTrusted(s Signals) bool {
	return r.trustForwarded && r.proxies.contains(s.PeerAddr())
}

func (r *Resolver) secure(s Signals, rej *rejections) bool {
	if s.IsTLS() {
		return true
	}

	raw := s.ForwardedProto()
	if raw == "" {
		return false
	}
	if !r.proxyTrusted(s) {
		rej.add(SourceForwardedProto, ErrUntrustedProxy)
		return false
	}

	switch strings.ToLower(firstToken(raw)) {
	case SchemeHTTPS:
		return true
	case SchemeHTTP:
		return false
	default:
		rej.add(SourceForwardedProto, ErrInvalidProto)
		return false
	}
}

func (r *Resolver) host(s Signals, rej *rejections) (string, Source) {
	if raw := s.ForwardedHost(); raw != "" {
		if r.proxyTrusted(s) {
			if host, ok := r.candidate(firstToken(raw), SourceForwardedHost, rej); ok {
				return host, SourceForwardedHost
			}
		} else {
			rej.add(SourceForwardedHost, ErrUntrustedProxy)
		}
	}

	if host, ok := r.candidate(s.HostHeader(), SourceHostHeader, rej); ok {
		return host, SourceHostHeader
	}
	if host, ok := r.candidate(s.ServerName(), SourceServerName, rej); ok {
		return host, SourceServerName
	}

	if r.defaultHost != "" {
		return r.defaultHost, SourceDefault
	}
	return "", SourceNone
}

// candidate sanitizes one optional value. Absent values are skipped silently.
func (r *Resolver) candidate(raw string, src Source, rej *rejections) (string, bool) {
	if raw == "" {
		return "", false
	}
	host, err := r.accept(raw)
	if err != nil {
		rej.add(src, err)
		return "", false
	}
	return host, true
}

func (r *Resolver) accept(raw string) (string, error) {
	host, port, err := SanitizeHost(raw, r.maxLen)
	if err != nil {
		return "", err
	}
	if !r.hosts.allows(host) {
		return "", ErrHostNotAllowed
	}
	if r.stripPort {
		port = ""
	}
	return JoinHostPort(host, port), nil
}

func prefix(secure bool) string {
	if secure {
		return SchemeHTTPS
	}
	return SchemeHTTP
}

// firstToken returns the first comma-separated value, trimmed.
func firstToken(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(first)
}

type rejections []Rejection

// add is a no-op on a nil receiver.
func (r *rejections) add(src Source, err error) {
	if r == nil {
		return
	}
	*r = append(*r, Rejection{Source: src, Err: err})
}
