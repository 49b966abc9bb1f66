package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/krisalay/tagcache"
	"github.com/krisalay/tagcache/config"
	"github.com/krisalay/tagcache/eviction"
)

// ================= BENCHMARK =================

func main() {
	policyName := flag.String("policy", "lru", "eviction policy: lru, lfu, fifo, ttl-aware")
	flag.Parse()

	policy, err := eviction.ParsePolicy(*policyName)
	if err != nil {
		slog.Error("parse policy", "error", err)
		os.Exit(1)
	}

	// ---------------- Cache Config ----------------
	const (
		capacity    = 200000
		preloadKeys = 100000
		keySpace    = 300000
		goroutines  = 200
		opsPerG     = 5000
		tagGroups   = 64
	)

	cfg := config.Config{
		MaxMemoryMB:    512,
		MaxKeys:        capacity,
		DefaultTTL:     time.Minute,
		EvictionPolicy: policy,
		SweepInterval:  time.Second,
	}

	fmt.Println("\n================ CACHE LOAD BENCHMARK =================")
	fmt.Println("CONFIG")
	fmt.Println("---------------------------------")
	fmt.Println("Policy       :", policy)
	fmt.Println("Capacity     :", capacity)
	fmt.Println("Preload Keys :", preloadKeys)
	fmt.Println("Key Space    :", keySpace)
	fmt.Println("Goroutines   :", goroutines)
	fmt.Println("Ops/Goroutine:", opsPerG)
	fmt.Println("---------------------------------")

	c, err := tagcache.New(cfg)
	if err != nil {
		slog.Error("build cache", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	tagFor := func(i int) string { return fmt.Sprintf("group-%d", i%tagGroups) }

	// ---------------- Preload Cache ----------------
	fmt.Println("Preloading cache...")
	for i := 0; i < preloadKeys; i++ {
		_ = c.Set(fmt.Sprintf("key-%d", i), i, tagcache.WithTags(tagFor(i)))
	}
	fmt.Println("Preload complete.")

	// ---------------- Load Test ----------------
	fmt.Println("Running mixed workload (80% get / 18% set / 2% invalidate)...")

	start := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewPCG(uint64(id), 42))
			for j := 0; j < opsPerG; j++ {
				k := r.IntN(keySpace)
				key := fmt.Sprintf("key-%d", k)
				switch op := r.IntN(100); {
				case op < 80:
					c.Get(key)
				case op < 98:
					_ = c.Set(key, k, tagcache.WithTags(tagFor(k)))
				default:
					c.InvalidateByTag(tagFor(k))
				}
			}
		}(i)
	}

	wg.Wait()

	duration := time.Since(start)
	totalOps := goroutines * opsPerG
	info := c.Info()

	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Printf("Hit Rate         : %.3f\n", info.HitRate)
	fmt.Printf("Evictions        : %d\n", info.EvictionCount)
	fmt.Printf("Invalidated      : %d\n", info.InvalidatedCount)
	fmt.Printf("Keys / Bytes     : %d / %d\n", info.TotalKeys, info.TotalMemoryUsageBytes)
	fmt.Println("=========================================")
}
