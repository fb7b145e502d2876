// Package command defines the hublink-cli commands on urfave/cli/v2.
//
//   - root.go: application, global flags, client construction
//   - link.go: link request, verify, consume and show
//   - system.go: health, status summary and on-demand sweep
//   - version.go: client and server versions
//
// Actions parse flags, call the server through connection.HTTPClient and
// render the result with the selected output format.
package command
