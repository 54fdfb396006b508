package hostresolver

import (
	"context"
	"strings"
)

// Scheme prefixes.
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

// Source names where a resolved host, or a rejected candidate, came from.
type Source string

const (
	SourceForwardedHost  Source = "forwarded_host"
	SourceForwardedProto Source = "forwarded_proto"
	SourceHostHeader     Source = "host_header"
	SourceServerName     Source = "server_name"
	SourceDefault        Source = "default"
	SourceNone           Source = "none"
)

// ResolvedHost is the protocol and host pair of a request.
// Domain never carries a scheme, path, credentials or whitespace.
type ResolvedHost struct {
	Prefix string `json:"prefix"`
	Domain string `json:"domain"`
}

// URL returns "{prefix}://{domain}", or false when Domain is empty.
func (h ResolvedHost) URL() (string, bool) {
	if h.Domain == "" {
		return "", false
	}
	return h.Prefix + "://" + h.Domain, true
}

// Hostname returns Domain without its port.
func (h ResolvedHost) Hostname() string {
	host := h.Domain
	if strings.HasPrefix(host, "[") {
		if end := strings.IndexByte(host, ']'); end >= 0 {
			return host[:end+1]
		}
		return host
	}
	host, _, _ = strings.Cut(host, ":")
	return host
}

// Rejection records a candidate that was demoted and why.
type Rejection struct {
	Err    error
	Source Source
}

// Resolution is the complete outcome of resolving one request.
type Resolution struct {
	Host       ResolvedHost
	Source     Source
	URL        string
	Rejections []Rejection
	Secure     bool
	HasURL     bool
}

type resolutionKey struct{}

// NewContext returns a copy of ctx carrying res.
func NewContext(ctx context.Context, res Resolution) context.Context {
	return context.WithValue(ctx, resolutionKey{}, res)
}

// FromContext returns the resolution stored by NewContext.
func FromContext(ctx context.Context) (Resolution, bool) {
	res, ok := ctx.Value(resolutionKey{}).(Resolution)
	return res, ok
}
