// This file defines how cache entries expire over time.

package expiration

import (
	"time"

	"github.com/krisalay/tagcache/types"
)

/*
Strategy is the interface that all expiration rules must follow. Instead of hard-coding
expiration logic into the cache, we define a strategy so expiration behavior can be swapped easily.

The TTL itself is per entry (CacheEntry.TTL, zero meaning none); a strategy
only decides how ExpireAt follows from it.
*/
type Strategy interface {

	// IsExpired checks if the entry is expired
	IsExpired(*types.CacheEntry, time.Time) bool

	// OnAccess is called whenever a cache entry is read successfully.
	OnAccess(*types.CacheEntry, time.Time)

	// OnWrite is called whenever a cache entry is written or replaced.
	OnWrite(*types.CacheEntry, time.Time)
}

/*
ExpireAfterWrite is the default strategy: the TTL counts from the moment the
entry was written and reads do not extend it.
*/
type ExpireAfterWrite struct{}

// IsExpired reports whether ExpireAt has been reached.
func (ExpireAfterWrite) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return ent.Expired(now)
}

// OnAccess only records the access time.
func (ExpireAfterWrite) OnAccess(ent *types.CacheEntry, now time.Time) {
	ent.LastAccessedAt = now
}

// OnWrite stamps creation/access times and derives ExpireAt from the entry's TTL.
func (ExpireAfterWrite) OnWrite(ent *types.CacheEntry, now time.Time) {
	stampWrite(ent, now)
}

func stampWrite(ent *types.CacheEntry, now time.Time) {
	ent.CreatedAt = now
	ent.LastAccessedAt = now
	ent.ExpireAt = time.Time{}
	if ent.TTL > 0 {
		ent.ExpireAt = now.Add(ent.TTL)
	}
}
