// This file implements FIFO eviction.

package eviction

import "github.com/krisalay/tagcache/types"

// fifo keeps keys in insertion order. The tail of the list is the oldest key.
type fifo struct {
	nodes map[string]*node
	queue keyList
}

func newFIFO() *fifo {
	return &fifo{nodes: make(map[string]*node)}
}

// OnGet is a no-op: FIFO ignores reads completely.
func (f *fifo) OnGet(*types.CacheEntry) {}

// OnPut appends the key as the newest. A re-set entry gets a fresh
// CreatedAt, so it moves to the back of the queue as well.
func (f *fifo) OnPut(ent *types.CacheEntry) {
	if n, ok := f.nodes[ent.Key]; ok {
		f.queue.moveToFront(n)
		return
	}
	n := &node{key: ent.Key}
	f.nodes[ent.Key] = n
	f.queue.pushFront(n)
}

// Evict returns the oldest inserted key.
func (f *fifo) Evict() string {
	n := f.queue.back()
	if n == nil {
		return ""
	}
	f.queue.remove(n)
	delete(f.nodes, n.key)
	return n.key
}

// Remove drops a key that left the cache for reasons other than eviction.
func (f *fifo) Remove(k string) {
	n, ok := f.nodes[k]
	if !ok {
		// Key not tracked; do nothing
		return
	}
	f.queue.remove(n)
	delete(f.nodes, k)
}

func (f *fifo) Len() int { return len(f.nodes) }

func (f *fifo) Reset() {
	f.nodes = make(map[string]*node)
	f.queue = keyList{}
}
