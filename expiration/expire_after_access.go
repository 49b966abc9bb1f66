package expiration

import (
	"time"

	"github.com/krisalay/tagcache/types"
)

/*
ExpireAfterAccess implements a very common cache behavior called "expire after access" or "sliding TTL".
Every time someone reads the data, the expiration timer is pushed forward by the entry's own TTL.
As long as the data keeps getting used, it stays alive. If nobody touches it for a while, it expires.

Entries stored without a TTL never expire under this strategy either.
*/
type ExpireAfterAccess struct{}

// IsExpired checks whether the entry is expired at this moment.
func (ExpireAfterAccess) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return ent.Expired(now)
}

/*
OnAccess is called every time the cache successfully returns a value. This is the key part of "expire after access".
1. Update LastAccessedAt to now
2. Push ExpireAt forward by the entry's TTL
*/
func (ExpireAfterAccess) OnAccess(ent *types.CacheEntry, now time.Time) {
	ent.LastAccessedAt = now
	if ent.TTL > 0 {
		ent.ExpireAt = now.Add(ent.TTL)
	}
}

// OnWrite is identical to ExpireAfterWrite: the first window starts at the write.
func (ExpireAfterAccess) OnWrite(ent *types.CacheEntry, now time.Time) {
	stampWrite(ent, now)
}
