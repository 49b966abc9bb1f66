package tagcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/krisalay/tagcache/api"
	"github.com/krisalay/tagcache/config"
	"github.com/krisalay/tagcache/engine"
	"github.com/krisalay/tagcache/eviction"
	"github.com/krisalay/tagcache/expiration"
	"github.com/krisalay/tagcache/stats"
	"github.com/krisalay/tagcache/store"
	"github.com/krisalay/tagcache/tagindex"
	"github.com/krisalay/tagcache/types"
)

var (
	ErrEmptyKey      = errors.New("cache key is empty")
	ErrInvalidTTL    = errors.New("ttl must be positive")
	ErrEntryTooLarge = errors.New("entry exceeds size limit")
)

var _ api.Cache = (*Cache)(nil)

/*
Cache is the main cache implementation.
This struct is the orchestrator that connects:
- the entry store
- the tag index
- eviction
- expiration
- stats and metrics

One lock covers all of them. Set, Get and eviction touch the store, the
index and the counters together, and no caller may observe one updated
without the others.
*/
type Cache struct {
	mu sync.RWMutex

	cfg config.Config

	// store is the single source of truth for entries.
	store *store.Store

	// tags maps tag → keys for bulk invalidation.
	tags *tagindex.Index

	// policy picks victims when a budget is exceeded.
	policy eviction.Policy

	// engine contains the "rules" of the cache: expiry, sizing, clock, metrics.
	engine *engine.CacheEngine

	// stats are the cumulative counters behind Info.
	stats stats.Counters

	logger *slog.Logger

	// sf prevents multiple goroutines from loading the same key simultaneously.
	sf singleflight.Group

	// Sweep goroutine ownership.
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Option configures a Cache at construction.
type Option func(*options)

type options struct {
	metrics types.Metrics
	logger  *slog.Logger
	clock   types.Clock
}

// WithMetrics mirrors lifecycle events to m, in addition to the built-in counters.
func WithMetrics(m types.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock replaces the system clock, mainly for tests.
func WithClock(c types.Clock) Option {
	return func(o *options) { o.clock = c }
}

/*
New builds a cache from cfg.

An invalid cfg is fatal: the error wraps config.ErrInvalidConfig and no
cache is returned. If cfg.SweepInterval > 0 a background goroutine is
started; call Close to stop it.
*/
func New(cfg config.Config, opts ...Option) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	var exp expiration.Strategy = expiration.ExpireAfterWrite{}
	if cfg.SlidingTTL {
		exp = expiration.ExpireAfterAccess{}
	}

	c := &Cache{
		cfg:    cfg,
		store:  store.New(),
		tags:   tagindex.New(),
		policy: eviction.NewEvictionPolicy(cfg.EvictionPolicy),
		logger: o.logger,
	}

	// Built-in counters first, so Info never depends on the external sink.
	sinks := types.MultiMetrics{&c.stats}
	if o.metrics != nil {
		sinks = append(sinks, o.metrics)
	}
	c.engine = engine.NewCacheEngine(
		exp,
		engine.JSONSizer{Compress: cfg.CompressionEnabled},
		o.clock,
		sinks,
	)

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	if cfg.SweepInterval > 0 {
		c.wg.Add(1)
		go c.sweepLoop(ctx, cfg.SweepInterval)
	}

	return c, nil
}

// WithTTL gives the entry an explicit time-to-live. ttl must be positive.
func WithTTL(ttl time.Duration) types.SetOption {
	return func(o *types.SetOptions) {
		o.TTL = ttl
		o.HasTTL = true
		o.NoTTL = false
	}
}

// WithNoTTL stores the entry without expiry, overriding the default TTL.
func WithNoTTL() types.SetOption {
	return func(o *types.SetOptions) {
		o.TTL = 0
		o.HasTTL = false
		o.NoTTL = true
	}
}

// WithTags attaches tags to the entry. Repeated and empty tags are dropped.
func WithTags(tags ...string) types.SetOption {
	return func(o *types.SetOptions) {
		o.Tags = append(o.Tags, tags...)
	}
}

/*
Set stores a value, fully replacing any previous entry for key.
*/
func (c *Cache) Set(key string, value any, opts ...types.SetOption) error {
	if key == "" {
		return ErrEmptyKey
	}

	var so types.SetOptions
	for _, opt := range opts {
		opt(&so)
	}

	ttl := c.cfg.DefaultTTL
	switch {
	case so.NoTTL:
		ttl = 0
	case so.HasTTL:
		if so.TTL <= 0 {
			return fmt.Errorf("%w: got %s for key %q", ErrInvalidTTL, so.TTL, key)
		}
		ttl = so.TTL
	}

	// Sizing is pure computation on the caller's value; no lock needed.
	size, err := c.engine.Size(key, value)
	if err != nil {
		c.logger.Warn("value not cached", "key", key, "error", err)
		return nil
	}
	if limit := c.entryLimit(); size > limit {
		return fmt.Errorf("%w: key %q is %d bytes, limit %d", ErrEntryTooLarge, key, size, limit)
	}

	ent := &types.CacheEntry{
		Key:       key,
		Value:     value,
		TTL:       ttl,
		SizeBytes: size,
		Tags:      dedupTags(so.Tags),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Apply expiration logic
	c.engine.OnWrite(ent, c.engine.Now())

	// A replaced entry leaves the index and the policy like a delete would.
	c.removeLocked(key)

	c.store.Put(ent)
	c.tags.Add(key, ent.Tags)
	c.policy.OnPut(ent)

	c.rebalanceLocked()
	return nil
}

/*
Get retrieves a value from the cache.
*/
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.engine.Now()

	ent, ok := c.store.Get(key)
	if !ok {
		c.engine.Metrics.Miss()
		return nil, false
	}

	// Check if entry is expired
	if c.engine.IsExpired(ent, now) {
		c.engine.Metrics.Miss()
		c.expireLocked(key)
		return nil, false
	}

	// Cache hit
	c.engine.Metrics.Hit()

	// Update access metadata / sliding TTL
	c.engine.OnRead(ent, now)

	// Update eviction metadata
	c.policy.OnGet(ent)

	return ent.Value, true
}

// GetAs is Get with a type assertion. A stored value of another type is
// reported as not found.
func GetAs[T any](c *Cache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

/*
Remember returns the cached value for key, or loads, caches and returns it.

singleflight ensures that if 100 goroutines miss the same key, only ONE of
them runs load; the others wait for its result. load runs outside the
cache lock. A failed Set after a successful load is logged and the loaded
value is still returned.
*/
func (c *Cache) Remember(ctx context.Context, key string, load types.Loader, opts ...types.SetOption) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.Set(key, val, opts...); err != nil {
			c.logger.Warn("loaded value not cached", "key", key, "error", err)
		}
		return val, nil
	})
	return v, err
}

/*
Del deletes a key from the cache immediately and reports whether it existed.
*/
func (c *Cache) Del(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.removeLocked(key)
	return ok
}

/*
TTL returns remaining time-to-live of a key. An expired entry found here is
removed, exactly as Get would.
*/
func (c *Cache) TTL(key string) types.TTL {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.store.Get(key)
	if !ok {
		return types.TTL{Kind: types.TTLAbsent}
	}

	now := c.engine.Now()
	if c.engine.IsExpired(ent, now) {
		c.expireLocked(key)
		return types.TTL{Kind: types.TTLAbsent}
	}
	if !ent.HasTTL() {
		return types.TTL{Kind: types.TTLInfinite}
	}
	return types.TTL{Kind: types.TTLRemaining, Remaining: ent.ExpireAt.Sub(now)}
}

/*
Keys returns the sorted names of live keys matching pattern.
Expired entries are skipped but left in place for Get or the sweep.
*/
func (c *Cache) Keys(pattern string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.engine.Now()
	out := make([]string, 0, c.store.Len())
	c.store.Range(func(ent *types.CacheEntry) bool {
		if !c.engine.IsExpired(ent, now) && matchKey(pattern, ent.Key) {
			out = append(out, ent.Key)
		}
		return true
	})
	sort.Strings(out)
	return out
}

// Len returns the number of stored entries, including expired ones not yet removed.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Len()
}

/*
InvalidateByTag removes every entry tagged with tag and returns the count.
*/
func (c *Cache) InvalidateByTag(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, key := range c.tags.Keys(tag) {
		if _, ok := c.removeLocked(key); ok {
			c.engine.Metrics.Invalidate()
			n++
		}
	}
	return n
}

// Tags lists every tag that currently has at least one entry.
func (c *Cache) Tags() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tags.Tags()
}

// KeysForTag lists the keys currently tagged with tag, sorted.
func (c *Cache) KeysForTag(tag string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tags.Keys(tag)
}

/*
Info returns a snapshot of the cache. It has no side effects.
*/
func (c *Cache) Info() stats.Info {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats.Snapshot(c.store.Len(), c.store.Bytes(), c.cfg)
}

/*
FlushAll empties the store, the tag index and the eviction policy.
Hit, miss, eviction and expiry counters are NOT reset.
*/
func (c *Cache) FlushAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.Reset()
	c.tags.Reset()
	c.policy.Reset()
}

/*
Sweep removes every expired entry now and returns how many it removed.
The background loop calls it on every tick; callers may call it directly.
*/
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.engine.Now()
	var expired []string
	c.store.Range(func(ent *types.CacheEntry) bool {
		if c.engine.IsExpired(ent, now) {
			expired = append(expired, ent.Key)
		}
		return true
	})
	for _, key := range expired {
		c.expireLocked(key)
	}
	return len(expired)
}

/*
Close stops the background sweep. The cache stays usable afterwards, only
without proactive expiry.
*/
func (c *Cache) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		c.wg.Wait()
	})
}

// sweepLoop periodically removes expired entries until ctx is canceled.
func (c *Cache) sweepLoop(ctx context.Context, every time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				c.logger.Debug("expired entries swept", "count", n)
			}
		}
	}
}

// removeLocked is the one removal path shared by delete, expiry, eviction,
// invalidation and replacement. It keeps the store, the tag index and the
// policy in step. Callers record whichever event caused the removal.
func (c *Cache) removeLocked(key string) (*types.CacheEntry, bool) {
	ent, ok := c.store.Delete(key)
	if !ok {
		return nil, false
	}
	c.tags.Remove(key, ent.Tags)
	c.policy.Remove(key)
	return ent, true
}

func (c *Cache) expireLocked(key string) {
	if _, ok := c.removeLocked(key); ok {
		c.engine.Metrics.Expire()
	}
}

/*
rebalanceLocked evicts until both budgets hold.

A victim that turns out to be already expired is counted as an expiry,
not an eviction: eviction only ever refers to live entries.
*/
func (c *Cache) rebalanceLocked() {
	maxBytes := c.cfg.MaxMemoryBytes()
	now := c.engine.Now()

	for c.store.Len() > c.cfg.MaxKeys || c.store.Bytes() > maxBytes {
		victim := c.policy.Evict()
		if victim == "" {
			c.logger.Error("eviction policy empty while over budget",
				"keys", c.store.Len(), "bytes", c.store.Bytes())
			return
		}

		ent, ok := c.removeLocked(victim)
		if !ok {
			continue
		}
		if c.engine.IsExpired(ent, now) {
			c.engine.Metrics.Expire()
		} else {
			c.engine.Metrics.Eviction()
		}
	}
}

// entryLimit is the largest single entry Set accepts.
func (c *Cache) entryLimit() int64 {
	limit := c.cfg.MaxMemoryBytes()
	if c.cfg.MaxEntryBytes > 0 && c.cfg.MaxEntryBytes < limit {
		limit = c.cfg.MaxEntryBytes
	}
	return limit
}

func dedupTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// matchKey treats patterns containing *, ? or [ as globs and anything else
// as a substring. An empty pattern matches every key.
func matchKey(pattern, key string) bool {
	if pattern == "" {
		return true
	}
	if strings.ContainsAny(pattern, "*?[") {
		return globMatch(pattern, key)
	}
	return strings.Contains(key, pattern)
}

/*
globMatch matches key against a Redis KEYS style glob.

- * matches any run of bytes, separators included
- ? matches one byte
- [abc], [a-z] and [^a] match one byte from (or outside) a class
- \x matches x literally

A malformed class never matches.
*/
func globMatch(pattern, key string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}
			if pattern == "" {
				return true
			}
			for i := 0; i <= len(key); i++ {
				if globMatch(pattern, key[i:]) {
					return true
				}
			}
			return false
		case '?':
			if key == "" {
				return false
			}
			pattern, key = pattern[1:], key[1:]
		case '[':
			if key == "" {
				return false
			}
			rest, ok := matchClass(pattern[1:], key[0])
			if !ok {
				return false
			}
			pattern, key = rest, key[1:]
		case '\\':
			if len(pattern) > 1 {
				pattern = pattern[1:]
			}
			fallthrough
		default:
			if key == "" || key[0] != pattern[0] {
				return false
			}
			pattern, key = pattern[1:], key[1:]
		}
	}
	return key == ""
}

// matchClass matches b against the class body following '[' and returns the
// pattern after the closing ']'.
func matchClass(class string, b byte) (string, bool) {
	negate := false
	if len(class) > 0 && (class[0] == '^' || class[0] == '!') {
		negate = true
		class = class[1:]
	}

	matched := false
	for i := 0; i < len(class); i++ {
		c := class[i]
		switch {
		case c == ']' && i > 0:
			return class[i+1:], matched != negate
		case c == '\\' && i+1 < len(class):
			i++
			if class[i] == b {
				matched = true
			}
		case i+2 < len(class) && class[i+1] == '-' && class[i+2] != ']':
			lo, hi := c, class[i+2]
			if lo > hi {
				lo, hi = hi, lo
			}
			if lo <= b && b <= hi {
				matched = true
			}
			i += 2
		case c == b:
			matched = true
		}
	}
	return "", false
}
