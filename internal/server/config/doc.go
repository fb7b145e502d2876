// Package config defines the hublink-server configuration.
//
//   - spec.go: configuration structure, keyed by koanf tags
//   - default.go: defaults applied before file and environment
//   - verify.go: validation through struct tags plus cross-field rules
//   - load.go: defaults, file and environment layered through confloader
//   - sanitize.go: masked copy for printing
package config
