package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/hostguard/pkg/hostresolver"
)

// Recorder counts resolution outcomes on a private registry.
type Recorder struct {
	resolutions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	unresolved  prometheus.Counter
	registry    *prometheus.Registry
}

// New creates a Recorder with all hostguard metrics registered.
func New() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostguard_resolutions_total",
				Help: "Total number of resolved requests by winning host source and scheme",
			},
			[]string{"source", "scheme"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostguard_rejected_candidates_total",
				Help: "Total number of demoted host or protocol candidates by source and reason",
			},
			[]string{"source", "reason"},
		),
		unresolved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "hostguard_unresolved_total",
				Help: "Total number of requests for which no trustworthy host was available",
			},
		),
		registry: registry,
	}

	registry.MustRegister(r.resolutions, r.rejections, r.unresolved)

	return r
}

// Observe records one resolution.
func (r *Recorder) Observe(res hostresolver.Resolution) {
	r.resolutions.WithLabelValues(string(res.Source), res.Host.Prefix).Inc()
	for _, rej := range res.Rejections {
		r.rejections.WithLabelValues(string(rej.Source), Reason(rej.Err)).Inc()
	}
	if !res.HasURL {
		r.unresolved.Inc()
	}
}

// Registry exposes the underlying registry, e.g. to add process collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Reason maps a rejection error to a bounded label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, hostresolver.ErrUntrustedProxy):
		return "untrusted_proxy"
	case errors.Is(err, hostresolver.ErrHostNotAllowed):
		return "not_allowed"
	case errors.Is(err, hostresolver.ErrEmptyHost):
		return "empty"
	case errors.Is(err, hostresolver.ErrHostTooLong):
		return "too_long"
	case errors.Is(err, hostresolver.ErrInvalidHostChar):
		return "invalid_char"
	case errors.Is(err, hostresolver.ErrInvalidPort):
		return "invalid_port"
	case errors.Is(err, hostresolver.ErrInvalidLabel):
		return "invalid_label"
	case errors.Is(err, hostresolver.ErrInvalidHost):
		return "malformed"
	case errors.Is(err, hostresolver.ErrInvalidProto):
		return "invalid_proto"
	default:
		return "other"
	}
}
