package hostrouter

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/hostguard/pkg/hostresolver"
)

// GetDomain returns the hostname of the request without its port.
// The resolution stored by the Origin middleware is preferred; without one
// the Host header is normalized, which is only safe behind a proxy that
// rewrites it.
//
// Examples:
//
//	"example.com:8080" -> "example.com"
//	"[::1]:8080" -> "[::1]"
//	"Example.COM" -> "example.com"
func GetDomain(r *http.Request) string {
	if res, ok := hostresolver.FromContext(r.Context()); ok {
		return res.Host.Hostname()
	}
	return normalizeHost(r.Host)
}

// GetSubdomain extracts the subdomain of the request below baseDomain.
// Returns empty string if the host doesn't match the base domain or has no subdomain.
//
// Examples:
//
//	GetSubdomain(req, "example.com") // host "foo.example.com" -> "foo"
//	GetSubdomain(req, "example.com") // host "bar.foo.example.com" -> "bar.foo"
//	GetSubdomain(req, "example.com") // host "example.com" -> ""
//	GetSubdomain(req, "example.com") // host "other.com" -> ""
func GetSubdomain(r *http.Request, baseDomain string) string {
	host := GetDomain(r)
	base := strings.ToLower(strings.TrimSpace(baseDomain))
	if base == "" || host == base {
		return ""
	}

	sub, ok := strings.CutSuffix(host, "."+base)
	if !ok {
		return ""
	}
	return sub
}

// normalizeHost lowercases a raw Host header value and strips its port.
// It does not validate; unresolved requests are routed on a best-effort basis.
func normalizeHost(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 && !strings.Contains(host[idx:], "]") {
		host = host[:idx]
	}
	return strings.ToLower(host)
}
