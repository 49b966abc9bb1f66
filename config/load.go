package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v2"

	"github.com/krisalay/tagcache/eviction"
)

// fileConfig is the YAML shape. Durations are in milliseconds and pointers
// tell "absent" apart from zero, so absent keys keep their defaults.
type fileConfig struct {
	MaxMemoryMB        *int    `yaml:"max_memory_mb"`
	MaxKeys            *int    `yaml:"max_keys"`
	DefaultTTLms       *int64  `yaml:"default_ttl_ms"`
	EvictionPolicy     *string `yaml:"eviction_policy"`
	CompressionEnabled *bool   `yaml:"compression_enabled"`
	MaxEntryBytes      *int64  `yaml:"max_entry_bytes"`
	SweepIntervalms    *int64  `yaml:"sweep_interval_ms"`
	SlidingTTL         *bool   `yaml:"sliding_ttl"`
}

/*
Load reads a YAML document on top of Default() and validates the result.

Example:

	max_memory_mb: 128
	max_keys: 50000
	default_ttl_ms: 30000
	eviction_policy: ttl-aware
	sweep_interval_ms: 10000

Unknown keys are rejected.
*/
func Load(r io.Reader) (Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := yaml.UnmarshalStrict(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	cfg := Default()
	if fc.MaxMemoryMB != nil {
		cfg.MaxMemoryMB = *fc.MaxMemoryMB
	}
	if fc.MaxKeys != nil {
		cfg.MaxKeys = *fc.MaxKeys
	}
	if fc.DefaultTTLms != nil {
		cfg.DefaultTTL = time.Duration(*fc.DefaultTTLms) * time.Millisecond
	}
	if fc.EvictionPolicy != nil {
		p, err := eviction.ParsePolicy(*fc.EvictionPolicy)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		cfg.EvictionPolicy = p
	}
	if fc.CompressionEnabled != nil {
		cfg.CompressionEnabled = *fc.CompressionEnabled
	}
	if fc.MaxEntryBytes != nil {
		cfg.MaxEntryBytes = *fc.MaxEntryBytes
	}
	if fc.SweepIntervalms != nil {
		cfg.SweepInterval = time.Duration(*fc.SweepIntervalms) * time.Millisecond
	}
	if fc.SlidingTTL != nil {
		cfg.SlidingTTL = *fc.SlidingTTL
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile is Load for a file on disk.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}
