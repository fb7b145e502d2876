// Package handler provides the HTTP handlers for hublink-server.
//
// JSON endpoints answer with the Response envelope. The browser callback
// renders a small HTML page instead.
//
//   - handler.go: Handler, envelope writers, error code to status mapping
//   - health.go: liveness and readiness
//   - linktoken.go: link token issue and consume, account link and lookup
//   - callback.go: browser callback that completes a link
//   - admin.go: status summary and on-demand sweep
package handler
