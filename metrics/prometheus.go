// Package metrics exports cache activity to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/krisalay/tagcache/stats"
	"github.com/krisalay/tagcache/types"
)

// Prometheus mirrors cache lifecycle events into counters.
// It satisfies types.Metrics; counter increments never block.
type Prometheus struct {
	Hits          prometheus.Counter
	Misses        prometheus.Counter
	Evictions     prometheus.Counter
	Expirations   prometheus.Counter
	Invalidations prometheus.Counter
}

var _ types.Metrics = (*Prometheus)(nil)

// NewPrometheus creates and registers the counters with reg under namespace.
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		Hits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of lookups that returned a live value",
		}),
		Misses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of lookups that found nothing or an expired entry",
		}),
		Evictions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Total number of live entries removed to satisfy the key or memory budget",
		}),
		Expirations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_expirations_total",
			Help:      "Total number of entries removed after their TTL passed",
		}),
		Invalidations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidations_total",
			Help:      "Total number of entries removed by tag invalidation",
		}),
	}
}

func (p *Prometheus) Hit()        { p.Hits.Inc() }
func (p *Prometheus) Miss()       { p.Misses.Inc() }
func (p *Prometheus) Eviction()   { p.Evictions.Inc() }
func (p *Prometheus) Expire()     { p.Expirations.Inc() }
func (p *Prometheus) Invalidate() { p.Invalidations.Inc() }

// InfoSource is anything that can produce a stats snapshot, normally *tagcache.Cache.
type InfoSource interface {
	Info() stats.Info
}

// RegisterInfoGauges exposes the live key count, memory usage and hit rate
// as gauges evaluated at scrape time.
func RegisterInfoGauges(reg prometheus.Registerer, namespace string, src InfoSource) {
	f := promauto.With(reg)

	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_keys",
		Help:      "Number of entries currently stored",
	}, func() float64 { return float64(src.Info().TotalKeys) })

	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_memory_bytes",
		Help:      "Estimated bytes held by stored entries",
	}, func() float64 { return float64(src.Info().TotalMemoryUsageBytes) })

	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_hit_rate",
		Help:      "Fraction of lookups that returned a live value",
	}, func() float64 { return src.Info().HitRate })
}
