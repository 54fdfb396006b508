package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hostguard/pkg/cookie"
	"github.com/dmitrymomot/hostguard/pkg/hostresolver"
)

func withResolution(r *http.Request, secure bool, domain string) *http.Request {
	res := hostresolver.Resolution{
		Host:   hostresolver.ResolvedHost{Prefix: "http", Domain: domain},
		Secure: secure,
	}
	if secure {
		res.Host.Prefix = "https"
	}
	return r.WithContext(hostresolver.NewContext(r.Context(), res))
}

func setCookie(t *testing.T, m *cookie.Manager, r *http.Request) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, r, "theme", "dark", 3600))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestManager_DefaultAttributes(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	c := setCookie(t, m, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, "theme", c.Name)
	require.Equal(t, "dark", c.Value)
	require.Equal(t, "/", c.Path)
	require.Equal(t, 3600, c.MaxAge)
	require.True(t, c.HttpOnly)
	require.False(t, c.Secure)
	require.Empty(t, c.Domain)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestManager_SecureFollowsOrigin(t *testing.T) {
	t.Parallel()

	m := cookie.New()

	t.Run("secure origin", func(t *testing.T) {
		t.Parallel()
		req := withResolution(httptest.NewRequest(http.MethodGet, "/", nil), true, "example.com")
		require.True(t, setCookie(t, m, req).Secure)
	})

	t.Run("plain origin", func(t *testing.T) {
		t.Parallel()
		req := withResolution(httptest.NewRequest(http.MethodGet, "/", nil), false, "example.com")
		require.False(t, setCookie(t, m, req).Secure)
	})

	t.Run("spoofed forwarded proto via resolver", func(t *testing.T) {
		t.Parallel()

		resolved := cookie.New(cookie.WithResolver(hostresolver.MustNew(hostresolver.Config{})))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		require.False(t, setCookie(t, resolved, req).Secure)
	})

	t.Run("trusted proxy via resolver", func(t *testing.T) {
		t.Parallel()

		resolved := cookie.New(cookie.WithResolver(hostresolver.MustNew(hostresolver.Config{
			TrustForwardedHeaders: true,
			TrustedProxies:        []string{"192.0.2.0/24"},
		})))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		require.True(t, setCookie(t, resolved, req).Secure)
	})
}

func TestManager_RequireSecure(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithRequireSecure())
	rec := httptest.NewRecorder()

	req := withResolution(httptest.NewRequest(http.MethodGet, "/", nil), false, "example.com")
	require.ErrorIs(t, m.Set(rec, req, "sid", "x", 60), cookie.ErrInsecureRequest)
	require.Empty(t, rec.Result().Cookies())

	req = withResolution(httptest.NewRequest(http.MethodGet, "/", nil), true, "example.com")
	require.NoError(t, m.Set(rec, req, "sid", "x", 60))
}

func TestManager_HostDomain(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithHostDomain())

	tests := []struct {
		name       string
		domain     string
		wantDomain string
	}{
		{"hostname", "app.example.com", "app.example.com"},
		{"hostname with port", "app.example.com:8443", "app.example.com"},
		{"IPv4 stays host-only", "192.168.1.10:8080", ""},
		{"IPv6 stays host-only", "[::1]:8080", ""},
		{"IPv4 without port stays host-only", "10.0.0.1", ""},
		{"IPv4-mapped IPv6 stays host-only", "[::ffff:10.0.0.1]", ""},
		{"numeric leading label keeps domain", "123.example.com", "123.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := withResolution(httptest.NewRequest(http.MethodGet, "/", nil), true, tt.domain)
			require.Equal(t, tt.wantDomain, setCookie(t, m, req).Domain)
		})
	}

	t.Run("unresolved origin", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := withResolution(httptest.NewRequest(http.MethodGet, "/", nil), false, "")
		require.ErrorIs(t, m.Set(rec, req, "theme", "dark", 60), cookie.ErrNoOrigin)

		bare := httptest.NewRequest(http.MethodGet, "/", nil)
		require.ErrorIs(t, m.Set(rec, bare, "theme", "dark", 60), cookie.ErrNoOrigin)
	})
}

func TestManager_GetAndDelete(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithPath("/admin"), cookie.WithHTTPOnly(false), cookie.WithSameSite(http.SameSiteStrictMode))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := m.Get(req, "theme")
	require.ErrorIs(t, err, cookie.ErrNotFound)

	req.AddCookie(&http.Cookie{Name: "theme", Value: "light"})
	v, err := m.Get(req, "theme")
	require.NoError(t, err)
	require.Equal(t, "light", v)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Delete(rec, req, "theme"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "/admin", cookies[0].Path)
	require.Equal(t, -1, cookies[0].MaxAge)
	require.False(t, cookies[0].HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}
