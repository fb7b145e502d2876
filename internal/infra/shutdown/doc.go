// Package shutdown coordinates graceful process termination.
//
// Components register named hooks with OnShutdown. On SIGINT, SIGTERM or
// an explicit Trigger the hooks run in reverse registration order under a
// shared deadline; every hook runs even if an earlier one fails.
package shutdown
