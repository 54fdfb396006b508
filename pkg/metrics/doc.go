// Package metrics exports Prometheus counters for host resolution.
//
// Metrics:
//
//	hostguard_resolutions_total{source,scheme}
//	hostguard_rejected_candidates_total{source,reason}
//	hostguard_unresolved_total
//
// A rising untrusted_proxy or not_allowed rate usually means clients are
// probing with forged Host or X-Forwarded-* headers, or that a proxy is
// missing from the trusted list.
package metrics
