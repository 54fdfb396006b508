package cookie

import (
	"errors"
	"net/http"
	"net/netip"
	"strings"

	"github.com/dmitrymomot/hostguard/pkg/hostresolver"
)

// Errors.
var (
	ErrNotFound        = errors.New("cookie: not found")
	ErrInsecureRequest = errors.New("cookie: secure cookie on insecure origin")
	ErrNoOrigin        = errors.New("cookie: no resolved origin for host-scoped cookie")
)

// Manager writes cookies whose Secure flag and Domain follow the resolved
// request origin instead of raw request headers.
type Manager struct {
	resolver      *hostresolver.Resolver
	path          string
	sameSite      http.SameSite
	httpOnly      bool
	hostDomain    bool
	requireSecure bool
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a cookie Manager with the given options.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithResolver resolves requests that carry no stored resolution.
func WithResolver(r *hostresolver.Resolver) Option {
	return func(m *Manager) {
		m.resolver = r
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		m.path = path
	}
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) {
		m.httpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// WithHostDomain sets the Domain attribute to the resolved hostname.
// Set returns ErrNoOrigin when the request has no resolved host.
func WithHostDomain() Option {
	return func(m *Manager) {
		m.hostDomain = true
	}
}

// WithRequireSecure makes Set fail with ErrInsecureRequest unless the
// request origin is HTTPS.
func WithRequireSecure() Option {
	return func(m *Manager) {
		m.requireSecure = true
	}
}

// Get returns a cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set writes a cookie scoped to the request origin.
func (m *Manager) Set(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) error {
	c, err := m.cookie(r, name, value, maxAge)
	if err != nil {
		return err
	}
	http.SetCookie(w, c)
	return nil
}

// Delete expires a cookie. It uses the same attributes as Set so the
// browser matches the original cookie.
func (m *Manager) Delete(w http.ResponseWriter, r *http.Request, name string) error {
	return m.Set(w, r, name, "", -1)
}

func (m *Manager) cookie(r *http.Request, name, value string, maxAge int) (*http.Cookie, error) {
	res, ok := m.origin(r)

	secure := ok && res.Secure
	if m.requireSecure && !secure {
		return nil, ErrInsecureRequest
	}

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}

	if m.hostDomain {
		host := res.Host.Hostname()
		if !ok || host == "" {
			return nil, ErrNoOrigin
		}
		// Browsers reject Domain for IP literals; leave it host-only.
		if !isIPLiteral(host) {
			c.Domain = host
		}
	}
	return c, nil
}

func (m *Manager) origin(r *http.Request) (hostresolver.Resolution, bool) {
	if res, ok := hostresolver.FromContext(r.Context()); ok {
		return res, true
	}
	if m.resolver != nil {
		return m.resolver.Request(r), true
	}
	return hostresolver.Resolution{}, false
}

func isIPLiteral(host string) bool {
	_, err := netip.ParseAddr(strings.Trim(host, "[]"))
	return err == nil
}
