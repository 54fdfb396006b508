// Package cookie writes HTTP cookies whose attributes follow the resolved
// request origin.
//
// The Secure flag is set from hostresolver.Resolution.Secure, so a request
// that reached a TLS-terminating proxy gets Secure cookies while a spoofed
// X-Forwarded-Proto from an untrusted client does not. WithHostDomain scopes
// cookies to the resolved hostname, never to a raw Host header.
//
// # Usage
//
//	m := cookie.New(
//		cookie.WithResolver(resolver),
//		cookie.WithRequireSecure(),
//	)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		if err := m.Set(w, r, "theme", "dark", 86400); err != nil {
//			// ErrInsecureRequest: the origin is plain HTTP
//		}
//	}
//
// The resolution stored by middlewares.Origin is used when present; the
// Manager's resolver is consulted otherwise. Without either the cookie is
// written host-only and not Secure.
package cookie
