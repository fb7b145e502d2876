// Package buildinfo exposes build-time version information.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/hublink-go/internal/infra/buildinfo.Version=v1.0.0 \
//	  -X github.com/yndnr/hublink-go/internal/infra/buildinfo.Commit=abc123"
//
// The Go version is read from the running binary.
package buildinfo
