package metrics_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hostguard/pkg/hostresolver"
	"github.com/dmitrymomot/hostguard/pkg/metrics"
)

func TestRecorder_Observe(t *testing.T) {
	t.Parallel()

	rec := metrics.New()
	resolver := hostresolver.MustNew(hostresolver.Config{})

	rec.Observe(resolver.Resolve(hostresolver.RequestSignals{
		Host:            "example.com",
		XForwardedHost:  "attacker.example",
		XForwardedProto: "https",
	}))
	rec.Observe(resolver.Resolve(hostresolver.RequestSignals{Host: "bad/host"}))

	body := scrape(t, rec)
	require.Contains(t, body, `hostguard_resolutions_total{scheme="http",source="host_header"} 1`)
	require.Contains(t, body, `hostguard_resolutions_total{scheme="http",source="none"} 1`)
	require.Contains(t, body, `hostguard_rejected_candidates_total{reason="untrusted_proxy",source="forwarded_host"} 1`)
	require.Contains(t, body, `hostguard_rejected_candidates_total{reason="untrusted_proxy",source="forwarded_proto"} 1`)
	require.Contains(t, body, `hostguard_rejected_candidates_total{reason="invalid_char",source="host_header"} 1`)
	require.Contains(t, body, "hostguard_unresolved_total 1")

	count, err := testutil.GatherAndCount(rec.Registry(), "hostguard_rejected_candidates_total")
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{hostresolver.ErrUntrustedProxy, "untrusted_proxy"},
		{hostresolver.ErrHostNotAllowed, "not_allowed"},
		{hostresolver.ErrEmptyHost, "empty"},
		{hostresolver.ErrHostTooLong, "too_long"},
		{hostresolver.ErrInvalidHostChar, "invalid_char"},
		{hostresolver.ErrInvalidPort, "invalid_port"},
		{hostresolver.ErrInvalidLabel, "invalid_label"},
		{hostresolver.ErrInvalidHost, "malformed"},
		{hostresolver.ErrInvalidProto, "invalid_proto"},
		{fmt.Errorf("wrapped: %w", hostresolver.ErrInvalidPort), "invalid_port"},
		{errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, metrics.Reason(tt.err))
	}
}

func scrape(t *testing.T, rec *metrics.Recorder) string {
	t.Helper()

	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}
