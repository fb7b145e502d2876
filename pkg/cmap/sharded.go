// Package cmap provides a concurrent-safe sharded map.
package cmap

import (
	"sync"

	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is the default number of shards.
const DefaultShardCount = 16

// Map is a concurrent-safe sharded map keyed by strings.
type Map[K ~string, V any] struct {
	shards    []*shard[K, V]
	shardMask uint64
}

type shard[K ~string, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// New creates a new sharded map with the default shard count.
func New[K ~string, V any]() *Map[K, V] {
	return NewWithShards[K, V](DefaultShardCount)
}

// NewWithShards creates a new sharded map with the specified shard count.
// shardCount must be a power of 2, otherwise DefaultShardCount is used.
func NewWithShards[K ~string, V any](shardCount int) *Map[K, V] {
	if shardCount <= 0 || shardCount&(shardCount-1) != 0 {
		shardCount = DefaultShardCount
	}

	m := &Map[K, V]{
		shards:    make([]*shard[K, V], shardCount),
		shardMask: uint64(shardCount - 1),
	}
	for i := range m.shards {
		m.shards[i] = &shard[K, V]{items: make(map[K]V)}
	}
	return m
}

func (m *Map[K, V]) getShard(key K) *shard[K, V] {
	return m.shards[murmur3.Sum64([]byte(key))&m.shardMask]
}

// SetIfAbsent sets the value only if the key does not exist.
// Returns true if the value was set, false if the key already exists.
func (m *Map[K, V]) SetIfAbsent(key K, value V) bool {
	s := m.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; ok {
		return false
	}
	s.items[key] = value
	return true
}

// Pop removes a key and returns its value.
// Returns the value and true if the key existed, zero value and false otherwise.
func (m *Map[K, V]) Pop(key K) (V, bool) {
	s := m.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	val, ok := s.items[key]
	if ok {
		delete(s.items, key)
	}
	return val, ok
}

// DeleteFunc removes every entry for which fn returns true and
// reports how many were removed. Each shard is scanned under its write lock.
func (m *Map[K, V]) DeleteFunc(fn func(key K, value V) bool) int {
	removed := 0
	for _, s := range m.shards {
		s.mu.Lock()
		for k, v := range s.items {
			if fn(k, v) {
				delete(s.items, k)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}

// Count returns the total number of items.
func (m *Map[K, V]) Count() int {
	count := 0
	for _, s := range m.shards {
		s.mu.RLock()
		count += len(s.items)
		s.mu.RUnlock()
	}
	return count
}
