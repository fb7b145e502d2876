// Package metric provides Prometheus metrics for hublink.
//
//   - prometheus.go: the private registry, counters and HTTP handler
//   - collector.go: a collector reading live sizes at scrape time
//
// Metrics include link token lifecycle counters, stored token and
// linked account gauges, and per-route HTTP request counts and latency.
// They are exposed at /metrics in Prometheus text format.
package metric
