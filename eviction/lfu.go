// This file implements LFU eviction.

package eviction

import "github.com/krisalay/tagcache/types"

/*
lfu groups keys by access count. Each frequency bucket is itself a recency
list, so among keys with the lowest count the one touched longest ago sits
at the tail of the lowest bucket.
*/
type lfu struct {
	// nodes lets us quickly find the node for a key
	nodes map[string]*node

	// buckets groups keys by how many times they were read
	buckets map[uint64]*keyList

	// minFreq is the smallest frequency currently present.
	// This avoids scanning the buckets on every eviction.
	minFreq uint64
}

func newLFU() *lfu {
	return &lfu{
		nodes:   make(map[string]*node),
		buckets: make(map[uint64]*keyList),
	}
}

// OnGet moves the key into the bucket matching its new access count.
func (l *lfu) OnGet(ent *types.CacheEntry) {
	n, ok := l.nodes[ent.Key]
	if !ok {
		// Key not tracked; nothing to do
		return
	}

	old := n.freq
	l.unlink(n)

	n.freq = ent.AccessCount
	if n.freq <= old {
		n.freq = old + 1
	}
	l.bucket(n.freq).pushFront(n)

	// The old bucket may have been the minimum and now be gone.
	l.fixMin()
}

// OnPut tracks a new key with frequency zero.
func (l *lfu) OnPut(ent *types.CacheEntry) {
	if n, ok := l.nodes[ent.Key]; ok {
		// A re-set entry starts over.
		l.unlink(n)
		delete(l.nodes, ent.Key)
	}

	n := &node{key: ent.Key}
	l.nodes[ent.Key] = n
	l.bucket(0).pushFront(n)

	// Since a key with freq=0 exists, minFreq must be 0
	l.minFreq = 0
}

// Evict removes the least recently touched key among those with the lowest count.
func (l *lfu) Evict() string {
	b, ok := l.buckets[l.minFreq]
	if !ok {
		// Nothing to evict
		return ""
	}
	n := b.back()
	l.unlink(n)
	delete(l.nodes, n.key)
	l.fixMin()
	return n.key
}

// Remove drops a key that left the cache for reasons other than eviction.
func (l *lfu) Remove(k string) {
	n, ok := l.nodes[k]
	if !ok {
		// Key not tracked
		return
	}
	l.unlink(n)
	delete(l.nodes, k)
	l.fixMin()
}

func (l *lfu) Len() int { return len(l.nodes) }

func (l *lfu) Reset() {
	l.nodes = make(map[string]*node)
	l.buckets = make(map[uint64]*keyList)
	l.minFreq = 0
}

func (l *lfu) bucket(freq uint64) *keyList {
	b := l.buckets[freq]
	if b == nil {
		b = &keyList{}
		l.buckets[freq] = b
	}
	return b
}

// unlink removes n from its bucket and drops the bucket if it became empty.
func (l *lfu) unlink(n *node) {
	b := l.buckets[n.freq]
	b.remove(n)
	if b.len() == 0 {
		delete(l.buckets, n.freq)
	}
}

// fixMin recomputes minFreq when its bucket disappeared. The number of
// distinct frequencies is small compared to the number of keys.
func (l *lfu) fixMin() {
	if _, ok := l.buckets[l.minFreq]; ok || len(l.buckets) == 0 {
		return
	}
	first := true
	for f := range l.buckets {
		if first || f < l.minFreq {
			l.minFreq = f
			first = false
		}
	}
}
