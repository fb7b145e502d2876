// Package main provides the entry point for hublink-cli.
//
// The CLI talks to a hublink server for:
//
//   - Issuing link tokens for chat users
//   - Completing or inspecting account links
//   - Health, status and on-demand sweeps
//
// Usage:
//
//	hublink-cli [global flags] command [flags]
//	hublink-cli link request --user 42
//	hublink-cli -o json system status
package main
