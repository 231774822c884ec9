// Package metrics provides the centralized Prometheus registry for the
// ARTIC client. All metrics are defined in their respective packages
// (client, ratelimit, selector) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - artic_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - artic_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - artic_errors_total{class} (Counter): Errors by class (client, server, network)
//
// Rate Limit Metrics (pkg/ratelimit):
//   - artic_throttle_wait_seconds (Histogram): Time spent waiting for the client-side limiter
//   - artic_throttles_total (Counter): Requests delayed by the client-side limiter
//
// Selector Metrics (pkg/selector):
//   - selector_walks_total{outcome} (Counter): Selection walks by outcome
//     (satisfied, exhausted, short_page, failed)
//   - selector_pages_per_walk (Histogram): Pages fetched per selection walk
//   - selector_duplicates_skipped_total (Counter): Records skipped as duplicates
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(artic_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(artic_request_duration_seconds_bucket[5m]))
//
//   # Share of walks that exhausted the source
//   rate(selector_walks_total{outcome="exhausted"}[1h]) /
//   sum(rate(selector_walks_total[1h]))
