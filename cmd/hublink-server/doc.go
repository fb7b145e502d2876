// Package main provides the entry point for hublink-server.
//
// The server owns the link token registry and exposes it over HTTP:
//
//   - /api/v1: issue and consume link tokens, record and look up links
//   - /link-discord: browser callback completing a link
//   - /admin/v1: status summary and on-demand sweep
//   - /health, /ready, /metrics
//
// Usage:
//
//	hublink-server [flags]
//	hublink-server --config /etc/hublink/hublink.yaml
//
// Tokens live in memory only and are discarded on shutdown.
package main
