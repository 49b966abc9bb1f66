// Package stats holds the cache's cumulative counters and the read-only
// snapshot handed to dashboards.
package stats

import "github.com/krisalay/tagcache/config"

/*
Counters are cumulative for the lifetime of a cache. FlushAll does not
reset them, so dashboards keep showing historical performance across
flushes; a caller wanting a clean slate builds a new cache.

Counters has no lock of its own. The owning cache mutates and reads it
under its lock.
*/
type Counters struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	Expirations uint64
	Invalidated uint64
}

func (c *Counters) Hit()        { c.Hits++ }
func (c *Counters) Miss()       { c.Misses++ }
func (c *Counters) Eviction()   { c.Evictions++ }
func (c *Counters) Expire()     { c.Expirations++ }
func (c *Counters) Invalidate() { c.Invalidated++ }

// Info is an immutable snapshot of the cache.
// TotalKeys and TotalMemoryUsageBytes are read from the live store at
// snapshot time, never tracked separately.
type Info struct {
	TotalHits             uint64
	TotalMisses           uint64
	HitRate               float64
	TotalKeys             int
	TotalMemoryUsageBytes int64
	EvictionCount         uint64
	ExpiredCount          uint64
	InvalidatedCount      uint64
	Config                config.Config
}

// Snapshot builds an Info from the counters and the live store totals.
func (c *Counters) Snapshot(keys int, bytes int64, cfg config.Config) Info {
	return Info{
		TotalHits:             c.Hits,
		TotalMisses:           c.Misses,
		HitRate:               HitRate(c.Hits, c.Misses),
		TotalKeys:             keys,
		TotalMemoryUsageBytes: bytes,
		EvictionCount:         c.Evictions,
		ExpiredCount:          c.Expirations,
		InvalidatedCount:      c.Invalidated,
		Config:                cfg,
	}
}

// HitRate is hits/(hits+misses), or 0 before any lookup.
func HitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
