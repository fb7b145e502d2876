// Package domain defines the core domain models for hublink.
//
// Domain models are pure value objects without IO dependencies or
// framework coupling. This package contains:
//
//   - LinkToken: single-use, time-limited token binding a chat user
//   - LinkedAccount: the chat user to hub user association
//   - Errors: domain-specific error definitions
//
// Lifetimes (LinkTokenTTL, SweepInterval) are fixed constants; they are
// not configuration.
package domain
