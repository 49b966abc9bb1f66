package store

import (
	"testing"

	"github.com/krisalay/tagcache/types"
)

func TestPutTracksBytes(t *testing.T) {
	s := New()

	s.Put(&types.CacheEntry{Key: "a", SizeBytes: 10})
	s.Put(&types.CacheEntry{Key: "b", SizeBytes: 5})

	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}
	if s.Bytes() != 15 {
		t.Fatalf("expected 15 bytes, got %d", s.Bytes())
	}
}

func TestPutReplaceAdjustsBytes(t *testing.T) {
	s := New()

	s.Put(&types.CacheEntry{Key: "a", SizeBytes: 10})
	old := s.Put(&types.CacheEntry{Key: "a", SizeBytes: 3})

	if old == nil || old.SizeBytes != 10 {
		t.Fatalf("expected replaced entry with size 10, got %+v", old)
	}
	if s.Len() != 1 || s.Bytes() != 3 {
		t.Fatalf("expected 1 entry / 3 bytes, got %d / %d", s.Len(), s.Bytes())
	}
}

func TestDelete(t *testing.T) {
	s := New()
	s.Put(&types.CacheEntry{Key: "a", SizeBytes: 7})

	if _, ok := s.Delete("missing"); ok {
		t.Fatalf("expected delete of missing key to report false")
	}

	ent, ok := s.Delete("a")
	if !ok || ent.Key != "a" {
		t.Fatalf("expected to delete a, got %v %v", ent, ok)
	}
	if s.Len() != 0 || s.Bytes() != 0 {
		t.Fatalf("expected empty store, got %d / %d", s.Len(), s.Bytes())
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.Put(&types.CacheEntry{Key: "a", SizeBytes: 7})
	s.Put(&types.CacheEntry{Key: "b", SizeBytes: 7})

	s.Reset()

	if s.Len() != 0 || s.Bytes() != 0 {
		t.Fatalf("expected empty store after reset, got %d / %d", s.Len(), s.Bytes())
	}
	if _, ok := s.Get("a"); ok {
		t.Fatalf("expected a to be gone after reset")
	}
}
