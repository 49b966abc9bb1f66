// Package config describes the budgets and policies a cache is built with.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/krisalay/tagcache/eviction"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid cache config")

/*
Config is supplied once at construction and never changes afterwards.

BUDGETS:
--------
After every Set the cache evicts until both hold:
  - summed entry size <= MaxMemoryMB * 1024 * 1024
  - number of entries <= MaxKeys
*/
type Config struct {
	MaxMemoryMB int
	MaxKeys     int

	// DefaultTTL applies when Set is called without a TTL.
	// Zero means such entries never expire.
	DefaultTTL time.Duration

	EvictionPolicy eviction.PolicyType

	// CompressionEnabled is advisory. It only makes size estimates use the
	// compressed length of a value's encoding.
	CompressionEnabled bool

	// MaxEntryBytes rejects single entries above this size.
	// Zero leaves the whole memory budget as the only ceiling.
	MaxEntryBytes int64

	// SweepInterval is how often expired entries are removed without
	// waiting for a Get. Zero disables the sweep; lazy expiry still applies.
	SweepInterval time.Duration

	// SlidingTTL makes every hit push the entry's expiry forward by its TTL.
	SlidingTTL bool
}

// Default returns a small general-purpose configuration.
func Default() Config {
	return Config{
		MaxMemoryMB:    64,
		MaxKeys:        10000,
		DefaultTTL:     5 * time.Minute,
		EvictionPolicy: eviction.LRU,
		SweepInterval:  time.Minute,
	}
}

// MaxMemoryBytes is the memory budget in bytes.
func (c Config) MaxMemoryBytes() int64 {
	return int64(c.MaxMemoryMB) * 1024 * 1024
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.MaxMemoryMB <= 0:
		return fmt.Errorf("%w: max memory must be positive, got %d MB", ErrInvalidConfig, c.MaxMemoryMB)
	case c.MaxKeys <= 0:
		return fmt.Errorf("%w: max keys must be positive, got %d", ErrInvalidConfig, c.MaxKeys)
	case c.DefaultTTL < 0:
		return fmt.Errorf("%w: default TTL must not be negative, got %s", ErrInvalidConfig, c.DefaultTTL)
	case !c.EvictionPolicy.Valid():
		return fmt.Errorf("%w: unknown eviction policy %q", ErrInvalidConfig, c.EvictionPolicy)
	case c.MaxEntryBytes < 0:
		return fmt.Errorf("%w: max entry bytes must not be negative, got %d", ErrInvalidConfig, c.MaxEntryBytes)
	case c.SweepInterval < 0:
		return fmt.Errorf("%w: sweep interval must not be negative, got %s", ErrInvalidConfig, c.SweepInterval)
	}
	return nil
}
