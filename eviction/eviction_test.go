package eviction

import (
	"testing"
	"time"

	"github.com/krisalay/tagcache/types"
)

var base = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func ent(key string) *types.CacheEntry {
	return &types.CacheEntry{Key: key, CreatedAt: base, LastAccessedAt: base}
}

func entTTL(key string, ttl time.Duration) *types.CacheEntry {
	e := ent(key)
	e.TTL = ttl
	e.ExpireAt = base.Add(ttl)
	return e
}

// touch mimics what the cache does on a hit before notifying the policy.
func touch(p Policy, e *types.CacheEntry) {
	e.AccessCount++
	p.OnGet(e)
}

func drain(p Policy) []string {
	var out []string
	for {
		k := p.Evict()
		if k == "" {
			return out
		}
		out = append(out, k)
	}
}

func assertOrder(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected eviction order %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected eviction order %v, got %v", want, got)
		}
	}
}

//
// ================= LRU =================
//

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	p := NewEvictionPolicy(LRU)
	a, b, c := ent("a"), ent("b"), ent("c")
	p.OnPut(a)
	p.OnPut(b)
	p.OnPut(c)

	touch(p, a)

	assertOrder(t, drain(p), "b", "c", "a")
}

func TestLRURemove(t *testing.T) {
	p := NewEvictionPolicy(LRU)
	p.OnPut(ent("a"))
	p.OnPut(ent("b"))

	p.Remove("a")
	p.Remove("missing")

	if p.Len() != 1 {
		t.Fatalf("expected 1 tracked key, got %d", p.Len())
	}
	assertOrder(t, drain(p), "b")
}

//
// ================= LFU =================
//

func TestLFUEvictsLowestCount(t *testing.T) {
	p := NewEvictionPolicy(LFU)
	a, b, c := ent("a"), ent("b"), ent("c")
	p.OnPut(a)
	p.OnPut(b)
	p.OnPut(c)

	touch(p, a)
	touch(p, a)
	touch(p, c)

	assertOrder(t, drain(p), "b", "c", "a")
}

func TestLFUTieBrokenByOldestAccess(t *testing.T) {
	p := NewEvictionPolicy(LFU)
	a, b := ent("a"), ent("b")
	p.OnPut(a)
	p.OnPut(b)

	// both end at count 1; a was touched last
	touch(p, b)
	touch(p, a)

	if got := p.Evict(); got != "b" {
		t.Fatalf("expected b (older access among equals), got %q", got)
	}
}

func TestLFURemoveMinimumBucket(t *testing.T) {
	p := NewEvictionPolicy(LFU)
	a, b := ent("a"), ent("b")
	p.OnPut(a)
	p.OnPut(b)
	touch(p, b)
	touch(p, b)

	// a is the only key in the lowest bucket
	p.Remove("a")

	if got := p.Evict(); got != "b" {
		t.Fatalf("expected b after removing the only low-count key, got %q", got)
	}
	if got := p.Evict(); got != "" {
		t.Fatalf("expected nothing left, got %q", got)
	}
}

func TestLFURePutResetsCount(t *testing.T) {
	p := NewEvictionPolicy(LFU)
	a, b := ent("a"), ent("b")
	p.OnPut(a)
	p.OnPut(b)
	touch(p, a)
	touch(p, b)
	touch(p, b)

	p.OnPut(ent("b"))

	if got := p.Evict(); got != "b" {
		t.Fatalf("expected re-put b to start from zero, got %q", got)
	}
}

//
// ================= FIFO =================
//

func TestFIFOIgnoresAccess(t *testing.T) {
	p := NewEvictionPolicy(FIFO)
	a, b, c := ent("a"), ent("b"), ent("c")
	p.OnPut(a)
	p.OnPut(b)
	p.OnPut(c)

	touch(p, a)
	touch(p, a)

	assertOrder(t, drain(p), "a", "b", "c")
}

func TestFIFORePutMovesToBack(t *testing.T) {
	p := NewEvictionPolicy(FIFO)
	p.OnPut(ent("a"))
	p.OnPut(ent("b"))
	p.OnPut(ent("a"))

	assertOrder(t, drain(p), "b", "a")
}

//
// ================= TTL-AWARE =================
//

func TestTTLAwareEvictsSoonestExpiry(t *testing.T) {
	p := NewEvictionPolicy(TTL)
	p.OnPut(entTTL("long", time.Hour))
	p.OnPut(ent("forever"))
	p.OnPut(entTTL("short", time.Minute))

	assertOrder(t, drain(p), "short", "long", "forever")
}

func TestTTLAwareFallsBackToLRU(t *testing.T) {
	p := NewEvictionPolicy(TTL)
	a, b := ent("a"), ent("b")
	p.OnPut(a)
	p.OnPut(b)
	touch(p, a)

	assertOrder(t, drain(p), "b", "a")
}

func TestTTLAwareSlidingExpiryReorders(t *testing.T) {
	p := NewEvictionPolicy(TTL)
	a := entTTL("a", time.Minute)
	b := entTTL("b", 2*time.Minute)
	p.OnPut(a)
	p.OnPut(b)

	// a slides past b
	a.ExpireAt = base.Add(5 * time.Minute)
	touch(p, a)

	assertOrder(t, drain(p), "b", "a")
}

func TestTTLAwareRemove(t *testing.T) {
	p := NewEvictionPolicy(TTL)
	p.OnPut(entTTL("a", time.Minute))
	p.OnPut(entTTL("b", time.Hour))

	p.Remove("a")

	assertOrder(t, drain(p), "b")
	if p.Len() != 0 {
		t.Fatalf("expected no tracked keys, got %d", p.Len())
	}
}

//
// ================= COMMON =================
//

func TestResetForgetsEverything(t *testing.T) {
	for _, pt := range []PolicyType{LRU, LFU, FIFO, TTL} {
		p := NewEvictionPolicy(pt)
		p.OnPut(ent("a"))
		p.OnPut(entTTL("b", time.Minute))
		p.Reset()
		if p.Len() != 0 || p.Evict() != "" {
			t.Fatalf("%s: expected empty policy after reset", pt)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	cases := map[string]PolicyType{
		"lru":       LRU,
		"LFU":       LFU,
		" fifo ":    FIFO,
		"ttl-aware": TTL,
		"TTL":       TTL,
	}
	for in, want := range cases {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Fatalf("ParsePolicy(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParsePolicy("random"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
