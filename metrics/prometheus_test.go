package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/krisalay/tagcache/stats"
)

func TestPrometheusCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.Hit()
	p.Hit()
	p.Miss()
	p.Eviction()
	p.Expire()
	p.Invalidate()
	p.Invalidate()
	p.Invalidate()

	checks := []struct {
		name string
		c    prometheus.Counter
		want float64
	}{
		{"hits", p.Hits, 2},
		{"misses", p.Misses, 1},
		{"evictions", p.Evictions, 1},
		{"expirations", p.Expirations, 1},
		{"invalidations", p.Invalidations, 3},
	}
	for _, c := range checks {
		if got := testutil.ToFloat64(c.c); got != c.want {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

type fixedInfo stats.Info

func (f fixedInfo) Info() stats.Info { return stats.Info(f) }

func TestRegisterInfoGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterInfoGauges(reg, "test", fixedInfo{
		TotalKeys:             3,
		TotalMemoryUsageBytes: 2048,
		HitRate:               0.5,
	})

	n, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 gauges, got %d", n)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	got := map[string]float64{}
	for _, mf := range families {
		got[mf.GetName()] = mf.GetMetric()[0].GetGauge().GetValue()
	}
	if got["test_cache_keys"] != 3 || got["test_cache_memory_bytes"] != 2048 || got["test_cache_hit_rate"] != 0.5 {
		t.Fatalf("unexpected gauge values: %v", got)
	}
}
