// Package tlsroots manages TLS material for hublink.
//
//   - roots.go: CA pools and client TLS configuration for the CLI
//   - reloader.go: server key pair that reloads when its files change
package tlsroots
