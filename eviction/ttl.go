// This file implements TTL-aware eviction.

package eviction

import (
	"container/heap"
	"time"

	"github.com/krisalay/tagcache/types"
)

// ttlItem is one key with a finite expiry inside the heap.
type ttlItem struct {
	key      string
	expireAt time.Time
	seq      uint64 // insertion order, breaks ties between equal expiries
	index    int
}

// expiryHeap is a min-heap on expireAt.
type expiryHeap []*ttlItem

func (h expiryHeap) Len() int { return len(h) }

func (h expiryHeap) Less(i, j int) bool {
	if h[i].expireAt.Equal(h[j].expireAt) {
		return h[i].seq < h[j].seq
	}
	return h[i].expireAt.Before(h[j].expireAt)
}

func (h expiryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *expiryHeap) Push(x any) {
	it := x.(*ttlItem)
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *expiryHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

/*
ttlAware evicts the key closest to expiring: it is about to become a miss
anyway, so dropping it early costs the least.

Keys with a TTL live in a min-heap on ExpireAt. Every key, with or without a
TTL, is also tracked by an LRU so that the fallback is ready once the heap
runs dry.
*/
type ttlAware struct {
	items    map[string]*ttlItem
	heap     expiryHeap
	seq      uint64
	fallback *lru
}

func newTTLAware() *ttlAware {
	return &ttlAware{
		items:    make(map[string]*ttlItem),
		fallback: newLRU(),
	}
}

// OnGet refreshes recency and, with sliding expiry, the key's heap position.
func (t *ttlAware) OnGet(ent *types.CacheEntry) {
	t.fallback.OnGet(ent)

	it, ok := t.items[ent.Key]
	if !ok || it.expireAt.Equal(ent.ExpireAt) {
		return
	}
	if !ent.HasTTL() {
		t.removeItem(it)
		return
	}
	it.expireAt = ent.ExpireAt
	heap.Fix(&t.heap, it.index)
}

// OnPut tracks the key in the LRU and, if it can expire, in the heap.
func (t *ttlAware) OnPut(ent *types.CacheEntry) {
	if it, ok := t.items[ent.Key]; ok {
		t.removeItem(it)
	}
	t.fallback.OnPut(ent)

	if !ent.HasTTL() {
		return
	}
	t.seq++
	it := &ttlItem{key: ent.Key, expireAt: ent.ExpireAt, seq: t.seq}
	t.items[ent.Key] = it
	heap.Push(&t.heap, it)
}

// Evict returns the soonest-expiring key, or the LRU key if none has a TTL.
func (t *ttlAware) Evict() string {
	if t.heap.Len() > 0 {
		it := heap.Pop(&t.heap).(*ttlItem)
		delete(t.items, it.key)
		t.fallback.Remove(it.key)
		return it.key
	}
	return t.fallback.Evict()
}

func (t *ttlAware) Remove(k string) {
	if it, ok := t.items[k]; ok {
		t.removeItem(it)
	}
	t.fallback.Remove(k)
}

func (t *ttlAware) Len() int { return t.fallback.Len() }

func (t *ttlAware) Reset() {
	t.items = make(map[string]*ttlItem)
	t.heap = nil
	t.fallback.Reset()
}

func (t *ttlAware) removeItem(it *ttlItem) {
	heap.Remove(&t.heap, it.index)
	delete(t.items, it.key)
}
