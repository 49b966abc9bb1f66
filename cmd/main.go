package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/krisalay/tagcache"
	"github.com/krisalay/tagcache/config"
	"github.com/krisalay/tagcache/metrics"
)

// ================= BACKING STORE =================

// OrderStore stands in for the slow lookups the cache shields:
// paginated order listings and per-user totals.
type OrderStore struct {
	mu      sync.Mutex
	orders  map[string][]string
	queries int
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: map[string][]string{
		"u1": {"o-100", "o-101", "o-102", "o-103"},
		"u2": {"o-200"},
	}}
}

func (s *OrderStore) Page(ctx context.Context, user string, page, size int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	fmt.Printf("STORE  → query orders user=%s page=%d\n", user, page)

	all := s.orders[user]
	from := (page - 1) * size
	if from >= len(all) {
		return []string{}, nil
	}
	to := min(from+size, len(all))
	return append([]string(nil), all[from:to]...), nil
}

func (s *OrderStore) Add(user, order string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[user] = append(s.orders[user], order)
}

func (s *OrderStore) Queries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries
}

func ordersKey(user string, page int) string {
	return fmt.Sprintf("orders:%s:page:%d", user, page)
}

func userTag(user string) string { return "user:" + user }

// ================= MAIN =================

func main() {
	configPath := flag.String("config", "", "YAML cache config (defaults are used when empty)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	cfg.MaxKeys = 20
	cfg.DefaultTTL = 2 * time.Second
	cfg.SweepInterval = 500 * time.Millisecond
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			logger.Error("load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		logger.Info("config loaded", "path", *configPath)
	}

	ctx := context.Background()

	fmt.Println("\n==================== SYSTEM BOOT ====================")
	fmt.Println("EVICTION POLICY :", cfg.EvictionPolicy)
	fmt.Println("MAX KEYS        :", cfg.MaxKeys)
	fmt.Println("MAX MEMORY      :", cfg.MaxMemoryMB, "MB")
	fmt.Println("DEFAULT TTL     :", cfg.DefaultTTL)
	fmt.Println("SWEEP INTERVAL  :", cfg.SweepInterval)

	// ---------------- Backing Store ----------------
	store := NewOrderStore()

	// ---------------- Metrics ----------------
	reg := prometheus.NewRegistry()
	prom := metrics.NewPrometheus(reg, "storefront")

	// ---------------- Cache ----------------
	cache, err := tagcache.New(cfg, tagcache.WithLogger(logger), tagcache.WithMetrics(prom))
	if err != nil {
		logger.Error("build cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()
	metrics.RegisterInfoGauges(reg, "storefront", cache)

	listOrders := func(user string, page int) []string {
		v, err := cache.Remember(ctx, ordersKey(user, page), func(ctx context.Context) (any, error) {
			return store.Page(ctx, user, page, 2)
		}, tagcache.WithTags("orders", userTag(user)))
		if err != nil {
			logger.Error("list orders", "user", user, "error", err)
			return nil
		}
		return v.([]string)
	}

	// ====================================================
	fmt.Println("\n==================== 1) CACHE MISS ====================")
	fmt.Println("CACHE  → page 1 =", listOrders("u1", 1))

	// ====================================================
	fmt.Println("\n==================== 2) CACHE HIT ====================")
	fmt.Println("CACHE  → page 1 =", listOrders("u1", 1))

	// ====================================================
	fmt.Println("\n==================== 3) SINGLEFLIGHT ====================")
	wg := sync.WaitGroup{}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			fmt.Printf("GOROUTINE-%d → page 2 = %v\n", id, listOrders("u1", 2))
		}(i)
	}
	wg.Wait()

	// ====================================================
	fmt.Println("\n==================== 4) TAG INVALIDATION ====================")
	listOrders("u2", 1)
	store.Add("u1", "o-104")
	n := cache.InvalidateByTag(userTag("u1"))
	fmt.Printf("CACHE  → new order for u1, invalidated %d pages\n", n)
	fmt.Println("CACHE  → keys left =", cache.Keys(""))
	fmt.Println("CACHE  → page 3 =", listOrders("u1", 3))

	// ====================================================
	fmt.Println("\n==================== 5) TTL EXPIRATION ====================")
	_ = cache.Set("totals:u2", 42, tagcache.WithTTL(time.Second), tagcache.WithTags(userTag("u2")))
	fmt.Println("CACHE  → SET totals:u2 (TTL = 1s), ttl =", cache.TTL("totals:u2").Remaining.Round(time.Millisecond))
	time.Sleep(1500 * time.Millisecond)
	_, ok := cache.Get("totals:u2")
	fmt.Println("CACHE  → GET totals:u2 after TTL found =", ok)

	// ====================================================
	fmt.Println("\n==================== 6) EVICTION ====================")
	for i := 0; i < 50; i++ {
		_ = cache.Set(fmt.Sprintf("k%d", i), i, tagcache.WithNoTTL())
	}
	fmt.Println("CACHE  → keys after 50 inserts =", len(cache.Keys("")))

	// ====================================================
	fmt.Println("\n==================== 7) FLUSH ====================")
	cache.FlushAll()
	fmt.Println("CACHE  → keys after flush =", len(cache.Keys("")))

	// ====================================================
	info := cache.Info()
	fmt.Println("\n==================== INFO ====================")
	fmt.Printf("HITS      : %d\n", info.TotalHits)
	fmt.Printf("MISSES    : %d\n", info.TotalMisses)
	fmt.Printf("HIT RATE  : %.2f\n", info.HitRate)
	fmt.Printf("EVICTIONS : %d\n", info.EvictionCount)
	fmt.Printf("EXPIRED   : %d\n", info.ExpiredCount)
	fmt.Printf("INVALID   : %d\n", info.InvalidatedCount)
	fmt.Printf("KEYS      : %d\n", info.TotalKeys)
	fmt.Printf("MEMORY    : %d bytes\n", info.TotalMemoryUsageBytes)
	fmt.Printf("DB QUERIES: %d\n", store.Queries())

	// ====================================================
	fmt.Println("\n==================== SHUTDOWN ====================")
	cache.Close()
	fmt.Println("SYSTEM → cache closed cleanly")
}
