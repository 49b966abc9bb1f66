package types

// This file defines how the cache reports what it is doing.

/*
Metrics is an event sink for the cache lifecycle. The cache keeps its own
counters for Info; a Metrics implementation mirrors the same events to an
external system. Every method is called with the cache lock held, so
implementations must be fast and non-blocking.
*/
type Metrics interface {

	// Hit is called when Get returns a live value.
	Hit()

	// Miss is called when Get finds nothing, or finds an expired entry.
	Miss()

	// Eviction is called when a live entry is removed to satisfy the key or memory budget.
	Eviction()

	// Expire is called when an entry is removed because it passed its TTL,
	// whether found lazily or by the sweep.
	Expire()

	// Invalidate is called once per entry removed by tag invalidation.
	Invalidate()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

It lets the cache call the sink unconditionally, without
nil checks on every hot path.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()        {}
func (NoopMetrics) Miss()       {}
func (NoopMetrics) Eviction()   {}
func (NoopMetrics) Expire()     {}
func (NoopMetrics) Invalidate() {}

// MultiMetrics forwards every event to each of its sinks in order.
type MultiMetrics []Metrics

func (m MultiMetrics) Hit() {
	for _, s := range m {
		s.Hit()
	}
}

func (m MultiMetrics) Miss() {
	for _, s := range m {
		s.Miss()
	}
}

func (m MultiMetrics) Eviction() {
	for _, s := range m {
		s.Eviction()
	}
}

func (m MultiMetrics) Expire() {
	for _, s := range m {
		s.Expire()
	}
}

func (m MultiMetrics) Invalidate() {
	for _, s := range m {
		s.Invalidate()
	}
}
