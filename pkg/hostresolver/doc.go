// Package hostresolver derives a trustworthy scheme, host and base URL for an
// inbound HTTP request.
//
// Host, X-Forwarded-Host, X-Forwarded-Proto and Forwarded are all client
// controlled. Building links, cookie domains or redirects from them directly
// enables host-header injection, cache poisoning and open redirects. The
// Resolver only honors forwarded values when forwarding is enabled and the
// immediate peer is a configured proxy, and it never returns a host that did
// not pass sanitization.
//
// # Operations
//
//   - IsHTTPSSecure: transport TLS, else the forwarded protocol from a trusted proxy.
//   - HTTPHost: forwarded host (trusted proxies only), Host header, server name, default.
//   - ServerHost: the {prefix, domain} pair.
//   - RequestURL: "{prefix}://{domain}", or false when no host is available.
//
// Resolve returns all of the above in one pass, together with the winning
// source and the demoted candidates, which is what the middlewares use.
//
// # Usage
//
//	resolver, err := hostresolver.New(hostresolver.Config{
//	    TrustForwardedHeaders: true,
//	    TrustedProxies:        []string{"10.0.0.0/8"},
//	    TrustedHostPatterns:   []string{"example.com", "*.example.com"},
//	    DefaultHost:           "example.com",
//	})
//	if err != nil {
//	    return err
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    base, ok := resolver.RequestURL(resolver.Signals(r))
//	    if !ok {
//	        // render relative links only
//	    }
//	}
//
// # Sanitization
//
// A candidate is trimmed, restricted to letters, digits, '.', '-' and ':'
// (bracketed IPv6 literals are accepted), split into host and port, checked
// for label and length limits and lowercased. A failing candidate falls
// through to the next one; resolution itself never fails.
//
// # List-valued headers
//
// When a forwarded header carries several comma-separated values, only the
// first one is considered.
package hostresolver
