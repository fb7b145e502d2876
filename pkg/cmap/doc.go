// Package cmap provides a sharded concurrent map for hublink.
//
// Keys are distributed across shards by their murmur3 hash. Every shard
// owns one RWMutex, so operations on different shards never contend.
//
// Atomicity:
//
// Each single-key operation (SetIfAbsent, Pop) runs entirely under
// its shard's write lock, so a lookup-check-delete sequence cannot be
// interleaved with another writer of the same key. DeleteFunc holds each
// shard's write lock while that shard is scanned.
//
// Usage:
//
//	m := cmap.New[string, entry]()
//	if !m.SetIfAbsent("k", e) {
//		// key already present
//	}
//	v, ok := m.Pop("k")
package cmap
