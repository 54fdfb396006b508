package hostresolver

import (
	"net/http"
	"strings"
)

// adapterConfig controls how FromHTTPRequest reads an *http.Request.
type adapterConfig struct {
	protoHeader    string
	hostHeader     string
	serverName     string
	parseForwarded bool
}

// SignalOption configures FromHTTPRequest.
type SignalOption func(*adapterConfig)

// WithServerName sets the operator-controlled server name fallback.
func WithServerName(name string) SignalOption {
	return func(c *adapterConfig) {
		c.serverName = name
	}
}

// WithForwardedHeaders overrides the forwarded proto and host header names.
// Empty arguments keep the defaults.
func WithForwardedHeaders(protoHeader, hostHeader string) SignalOption {
	return func(c *adapterConfig) {
		if protoHeader != "" {
			c.protoHeader = protoHeader
		}
		if hostHeader != "" {
			c.hostHeader = hostHeader
		}
	}
}

// WithRFC7239 enables reading proto= and host= from the Forwarded header
// when the X-Forwarded-* headers are absent.
func WithRFC7239(enabled bool) SignalOption {
	return func(c *adapterConfig) {
		c.parseForwarded = enabled
	}
}

// FromHTTPRequest snapshots the signals of r. It makes no trust decision:
// forwarded values are copied verbatim and judged later by the Resolver.
func FromHTTPRequest(r *http.Request, opts ...SignalOption) RequestSignals {
	cfg := &adapterConfig{
		protoHeader: DefaultForwardedProtoHeader,
		hostHeader:  DefaultForwardedHostHeader,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if r == nil {
		return RequestSignals{Server: cfg.serverName}
	}

	s := RequestSignals{
		TLS:             r.TLS != nil,
		Peer:            r.RemoteAddr,
		Host:            r.Host,
		Server:          cfg.serverName,
		XForwardedProto: headerValue(r.Header, cfg.protoHeader),
		XForwardedHost:  headerValue(r.Header, cfg.hostHeader),
	}

	if cfg.parseForwarded && (s.XForwardedProto == "" || s.XForwardedHost == "") {
		proto, host := parseForwarded(headerValue(r.Header, "Forwarded"))
		if s.XForwardedProto == "" {
			s.XForwardedProto = proto
		}
		if s.XForwardedHost == "" {
			s.XForwardedHost = host
		}
	}

	return s
}

// headerValue joins repeated header lines so that the first value of the
// first line stays the first comma-separated token.
func headerValue(h http.Header, name string) string {
	values := h.Values(name)
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

// parseForwarded extracts proto and host from the first element of an
// RFC 7239 Forwarded header. Separators inside quoted strings are ignored
// and quoted values are unquoted.
func parseForwarded(header string) (proto, host string) {
	if header == "" {
		return "", ""
	}
	first, _ := cutUnquoted(header, ',')
	for rest := first; rest != ""; {
		var param string
		param, rest = cutUnquoted(rest, ';')
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), "\"")
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "proto":
			proto = value
		case "host":
			host = value
		}
	}
	return proto, host
}

// cutUnquoted splits s at the first sep that is not inside a quoted string.
func cutUnquoted(s string, sep byte) (before, after string) {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && quoted:
			i++
		case c == '"':
			quoted = !quoted
		case c == sep && !quoted:
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}
