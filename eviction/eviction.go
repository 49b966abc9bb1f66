package eviction

import (
	"fmt"
	"strings"

	"github.com/krisalay/tagcache/types"
)

/*
This file defines how the cache decides what to remove when it runs out of space.
*/

/*
Policy is the interface that all eviction strategies must follow.

The cache does NOT care how eviction works internally.
It only calls these methods, always under its own lock.

Ordering is driven by the sequence of calls, not by comparing timestamps,
so entries stamped with the same clock reading still have a strict order.
*/
type Policy interface {

	// OnGet is called after a successful read. The entry's AccessCount,
	// LastAccessedAt and (with sliding expiry) ExpireAt are already updated.
	OnGet(*types.CacheEntry)

	// OnPut is called when an entry is inserted. A re-set key is removed
	// first, so OnPut normally sees fresh keys; a tracked key is re-tracked
	// as if it were new.
	OnPut(*types.CacheEntry)

	// Remove is called on every non-eviction removal path
	// (delete, expiry, invalidation). Untracked keys are ignored.
	Remove(string)

	// Evict picks a victim, forgets it, and returns its key.
	// It returns "" when nothing is tracked.
	Evict() string

	// Len returns the number of tracked keys.
	Len() int

	// Reset forgets every key.
	Reset()
}

// PolicyType is a simple identifier for supported eviction strategies.
type PolicyType string

const (
	// LRU (Least Recently Used): Evicts the key that has NOT been accessed for the longest time.
	LRU PolicyType = "LRU"

	// LFU (Least Frequently Used): Evicts the key that has been read the fewest times.
	// Ties go to the key whose last access is oldest.
	LFU PolicyType = "LFU"

	// FIFO (First In First Out): Evicts the oldest inserted key, regardless of access.
	FIFO PolicyType = "FIFO"

	// TTL (TTL-aware): Evicts the key that would expire soonest.
	// Keys without a TTL are only considered once no key has one, in LRU order.
	TTL PolicyType = "TTL"
)

// Valid reports whether t names a supported policy.
func (t PolicyType) Valid() bool {
	switch t {
	case LRU, LFU, FIFO, TTL:
		return true
	}
	return false
}

// ParsePolicy accepts the policy names case-insensitively, including the
// "ttl-aware" spelling.
func ParsePolicy(s string) (PolicyType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LRU":
		return LRU, nil
	case "LFU":
		return LFU, nil
	case "FIFO":
		return FIFO, nil
	case "TTL", "TTL-AWARE", "TTL_AWARE":
		return TTL, nil
	}
	return "", fmt.Errorf("unknown eviction policy %q", s)
}

// NewEvictionPolicy is a small factory function.
// Given a PolicyType, it creates the correct eviction policy.
func NewEvictionPolicy(t PolicyType) Policy {
	switch t {
	case LRU:
		return newLRU()
	case LFU:
		return newLFU()
	case FIFO:
		return newFIFO()
	case TTL:
		return newTTLAware()
	default:
		panic("unknown eviction policy")
	}
}
