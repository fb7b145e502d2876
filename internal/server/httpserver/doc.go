// Package httpserver provides the HTTP/HTTPS server for hublink.
//
//   - Link token endpoints: /api/v1/link-tokens, /api/v1/link-tokens/consume
//   - Account link endpoints: /api/v1/links, /api/v1/links/{chat_user_id}
//   - Browser callback: /link-discord (configurable)
//   - Admin endpoints: /admin/v1/*
//   - Health endpoints: /health, /ready, /metrics
//
// Routing uses chi. Every route gets RequestID, Recover and Audit; /api and
// /admin also require the configured API key. HTTPS certificates are served
// through a tlsroots.Reloader and pick up file changes without a restart.
package httpserver
