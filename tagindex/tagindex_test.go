package tagindex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddAndKeys(t *testing.T) {
	ix := New()
	ix.Add("order:1", []string{"orders", "user:7"})
	ix.Add("order:2", []string{"orders"})

	if diff := cmp.Diff([]string{"order:1", "order:2"}, ix.Keys("orders")); diff != "" {
		t.Fatalf("orders bucket mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"order:1"}, ix.Keys("user:7")); diff != "" {
		t.Fatalf("user:7 bucket mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"orders", "user:7"}, ix.Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestRemovePrunesEmptyBuckets(t *testing.T) {
	ix := New()
	ix.Add("a", []string{"t1", "t2"})
	ix.Add("b", []string{"t2"})

	ix.Remove("a", []string{"t1", "t2"})

	if ix.Has("t1", "a") || ix.Has("t2", "a") {
		t.Fatalf("expected a to be gone from every bucket")
	}
	if ix.Len() != 1 {
		t.Fatalf("expected only t2 to remain, got %v", ix.Tags())
	}
	if !ix.Has("t2", "b") {
		t.Fatalf("expected b to stay under t2")
	}
}

func TestKeysUnknownTag(t *testing.T) {
	ix := New()
	if got := ix.Keys("nope"); len(got) != 0 {
		t.Fatalf("expected no keys, got %v", got)
	}
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	ix := New()
	ix.Add("a", []string{"t1"})

	ix.Remove("zzz", []string{"t1", "t9"})

	if !ix.Has("t1", "a") {
		t.Fatalf("expected a to stay under t1")
	}
}

func TestReset(t *testing.T) {
	ix := New()
	ix.Add("a", []string{"t1"})
	ix.Reset()
	if ix.Len() != 0 {
		t.Fatalf("expected empty index after reset")
	}
}
