package stats

import (
	"testing"

	"github.com/krisalay/tagcache/config"
)

func TestHitRate(t *testing.T) {
	if got := HitRate(0, 0); got != 0 {
		t.Fatalf("expected 0 with no lookups, got %v", got)
	}
	if got := HitRate(3, 1); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
	if got := HitRate(0, 5); got != 0 {
		t.Fatalf("expected 0 with only misses, got %v", got)
	}
}

func TestSnapshot(t *testing.T) {
	var c Counters
	c.Hit()
	c.Hit()
	c.Miss()
	c.Eviction()
	c.Expire()
	c.Invalidate()
	c.Invalidate()

	cfg := config.Default()
	info := c.Snapshot(4, 1024, cfg)

	if info.TotalHits != 2 || info.TotalMisses != 1 {
		t.Fatalf("unexpected hit/miss: %+v", info)
	}
	if info.EvictionCount != 1 || info.ExpiredCount != 1 || info.InvalidatedCount != 2 {
		t.Fatalf("unexpected removal counters: %+v", info)
	}
	if info.TotalKeys != 4 || info.TotalMemoryUsageBytes != 1024 {
		t.Fatalf("unexpected store totals: %+v", info)
	}
	if info.Config != cfg {
		t.Fatalf("expected config to be carried into the snapshot")
	}
}
