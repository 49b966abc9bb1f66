package store

import (
	"github.com/krisalay/tagcache/types"
)

/*
This file defines how entries are actually held in memory.

Store is the single source of truth for value, expiry and access metadata.
It also keeps a running total of SizeBytes so the memory budget can be
checked without walking every entry.

Store does NOT lock. The owning cache serializes every call.
*/
type Store struct {

	// entries maps cache keys to their records.
	entries map[string]*types.CacheEntry

	// bytes is the sum of SizeBytes over entries. It is adjusted on every
	// Put and Delete, so it always matches the live map.
	bytes int64
}

func New() *Store {
	return &Store{entries: make(map[string]*types.CacheEntry)}
}

// Get retrieves an entry by key.
func (s *Store) Get(key string) (*types.CacheEntry, bool) {
	ent, ok := s.entries[key]
	return ent, ok
}

// Put inserts or replaces an entry and returns the entry it replaced, if any.
func (s *Store) Put(ent *types.CacheEntry) (old *types.CacheEntry) {
	old = s.entries[ent.Key]
	if old != nil {
		s.bytes -= old.SizeBytes
	}
	s.entries[ent.Key] = ent
	s.bytes += ent.SizeBytes
	return old
}

// Delete removes an entry and returns it. The second result is false if the
// key was not stored.
func (s *Store) Delete(key string) (*types.CacheEntry, bool) {
	ent, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	delete(s.entries, key)
	s.bytes -= ent.SizeBytes
	return ent, true
}

// Len returns how many entries are stored, expired or not.
func (s *Store) Len() int {
	return len(s.entries)
}

// Bytes returns the summed SizeBytes of all stored entries.
func (s *Store) Bytes() int64 {
	return s.bytes
}

// Range calls fn for every entry until fn returns false. fn must not
// mutate the store.
func (s *Store) Range(fn func(*types.CacheEntry) bool) {
	for _, ent := range s.entries {
		if !fn(ent) {
			return
		}
	}
}

// Reset drops every entry.
func (s *Store) Reset() {
	s.entries = make(map[string]*types.CacheEntry)
	s.bytes = 0
}
