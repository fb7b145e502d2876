// Package memory provides in-memory storage for hublink.
//
// Nothing here survives a restart. Two stores are provided:
//
//   - LinkTokenStore: pending link tokens keyed by token digest, held in
//     a sharded map so issue, consume and sweep only contend per shard
//   - AccountStore: linked accounts with a reverse index by hub user
//
// Thread Safety:
//
// All operations are thread-safe. LinkTokenStore relies on the shard
// lock of pkg/cmap for every read-check-write; AccountStore serializes
// writes under a single mutex so both indexes move together.
package memory
