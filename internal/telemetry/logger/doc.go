// Package logger provides structured logging for hublink.
//
// It wraps log/slog behind a small Logger interface:
//
//   - logger.go: construction, dynamic level, package-level default
//   - rotate.go: optional rotating file output (lumberjack)
//   - context.go: request-scoped loggers and request IDs
//   - redact.go: masking of link tokens and sensitive keys
//
// Link token values (lnk_...) are never written in full, including
// when they appear inside a link URL.
package logger
