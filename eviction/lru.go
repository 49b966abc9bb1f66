// This file implements LRU eviction.

package eviction

import "github.com/krisalay/tagcache/types"

// lru keeps keys in a list ordered by last use: head is the most recently
// used key, tail the least recently used one.
type lru struct {
	// nodes maps cache keys to their list nodes so a touch is O(1).
	nodes map[string]*node
	order keyList
}

func newLRU() *lru {
	return &lru{nodes: make(map[string]*node)}
}

// OnGet moves the key to the front: it is now the most recently used.
func (l *lru) OnGet(ent *types.CacheEntry) {
	if n, ok := l.nodes[ent.Key]; ok {
		l.order.moveToFront(n)
	}
}

// OnPut adds a new key at the front. Writing a tracked key counts as use.
func (l *lru) OnPut(ent *types.CacheEntry) {
	if n, ok := l.nodes[ent.Key]; ok {
		l.order.moveToFront(n)
		return
	}
	n := &node{key: ent.Key}
	l.nodes[ent.Key] = n
	l.order.pushFront(n)
}

// Evict removes the least recently used key, which is always at the tail.
func (l *lru) Evict() string {
	n := l.order.back()
	if n == nil {
		return ""
	}
	l.order.remove(n)
	delete(l.nodes, n.key)
	return n.key
}

// Remove keeps LRU's internal state consistent when a key leaves the cache
// for any reason other than eviction.
func (l *lru) Remove(k string) {
	if n, ok := l.nodes[k]; ok {
		l.order.remove(n)
		delete(l.nodes, k)
	}
}

func (l *lru) Len() int { return len(l.nodes) }

func (l *lru) Reset() {
	l.nodes = make(map[string]*node)
	l.order = keyList{}
}
