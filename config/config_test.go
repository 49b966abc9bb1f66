package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/krisalay/tagcache/eviction"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero memory":    func(c *Config) { c.MaxMemoryMB = 0 },
		"negative keys":  func(c *Config) { c.MaxKeys = -1 },
		"negative ttl":   func(c *Config) { c.DefaultTTL = -time.Second },
		"unknown policy": func(c *Config) { c.EvictionPolicy = "MRU" },
		"negative entry": func(c *Config) { c.MaxEntryBytes = -1 },
		"negative sweep": func(c *Config) { c.SweepInterval = -time.Second },
		"empty policy":   func(c *Config) { c.EvictionPolicy = "" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestMaxMemoryBytes(t *testing.T) {
	cfg := Config{MaxMemoryMB: 2}
	if cfg.MaxMemoryBytes() != 2*1024*1024 {
		t.Fatalf("unexpected byte budget %d", cfg.MaxMemoryBytes())
	}
}

func TestLoad(t *testing.T) {
	doc := `
max_memory_mb: 128
max_keys: 500
default_ttl_ms: 30000
eviction_policy: ttl-aware
compression_enabled: true
max_entry_bytes: 4096
sweep_interval_ms: 250
sliding_ttl: true
`
	got, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Config{
		MaxMemoryMB:        128,
		MaxKeys:            500,
		DefaultTTL:         30 * time.Second,
		EvictionPolicy:     eviction.TTL,
		CompressionEnabled: true,
		MaxEntryBytes:      4096,
		SweepInterval:      250 * time.Millisecond,
		SlidingTTL:         true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	got, err := Load(strings.NewReader("max_keys: 7\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	want.MaxKeys = 7
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	empty, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if diff := cmp.Diff(Default(), empty); diff != "" {
		t.Fatalf("empty document should yield defaults (-want +got):\n%s", diff)
	}
}

func TestLoadRejects(t *testing.T) {
	docs := []string{
		"max_keys: 0\n",
		"eviction_policy: random\n",
		"unknown_key: 1\n",
		"max_keys: [1, 2]\n",
	}
	for _, doc := range docs {
		if _, err := Load(strings.NewReader(doc)); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig for %q, got %v", doc, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.yaml")
	if err := os.WriteFile(path, []byte("eviction_policy: lfu\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if got.EvictionPolicy != eviction.LFU {
		t.Fatalf("expected LFU, got %q", got.EvictionPolicy)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
