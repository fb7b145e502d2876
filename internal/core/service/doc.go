// Package service provides domain services for hublink.
//
// Domain services contain the business logic and orchestrate operations
// on domain models. They define interfaces for storage dependencies,
// allowing for dependency injection and testability.
//
// This package contains:
//
//   - Registry: link token issue, single-use consume and sweep
//   - Sweeper: background task running Registry.Sweep on SweepInterval
//   - LinkService: the account linking flow built on the registry
//
// All services are safe for concurrent use.
package service
