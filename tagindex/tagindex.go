// Package tagindex maps tags to the keys currently carrying them, so a whole
// group of entries can be invalidated without knowing their key names.
package tagindex

import "sort"

/*
Index is the secondary index tag → key-set.

INVARIANT:
----------
A key appears under tag T if and only if the live entry for that key has T
in its tags. The cache calls Add when an entry is inserted and Remove on
every removal path (delete, expiry, eviction, invalidation, flush).

Empty buckets are pruned so Len reflects tags that still have members.

Index does NOT lock. The owning cache serializes every call.
*/
type Index struct {
	buckets map[string]map[string]struct{}
}

func New() *Index {
	return &Index{buckets: make(map[string]map[string]struct{})}
}

// Add registers key under each tag.
func (ix *Index) Add(key string, tags []string) {
	for _, tag := range tags {
		b := ix.buckets[tag]
		if b == nil {
			b = make(map[string]struct{})
			ix.buckets[tag] = b
		}
		b[key] = struct{}{}
	}
}

// Remove unregisters key from each tag, pruning buckets that become empty.
func (ix *Index) Remove(key string, tags []string) {
	for _, tag := range tags {
		b, ok := ix.buckets[tag]
		if !ok {
			continue
		}
		delete(b, key)
		if len(b) == 0 {
			delete(ix.buckets, tag)
		}
	}
}

// Keys returns a copy of the keys under tag, sorted. The copy lets the
// caller remove entries while iterating.
func (ix *Index) Keys(tag string) []string {
	b := ix.buckets[tag]
	out := make([]string, 0, len(b))
	for k := range b {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Has reports whether key is registered under tag.
func (ix *Index) Has(tag, key string) bool {
	_, ok := ix.buckets[tag][key]
	return ok
}

// Tags returns every tag with at least one member, sorted.
func (ix *Index) Tags() []string {
	out := make([]string, 0, len(ix.buckets))
	for t := range ix.buckets {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of non-empty tags.
func (ix *Index) Len() int {
	return len(ix.buckets)
}

// Reset drops every bucket.
func (ix *Index) Reset() {
	ix.buckets = make(map[string]map[string]struct{})
}
