package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// allocMetrics exports allocator activity to prometheus. A nil registerer
// leaves the collectors live but unregistered, so recording is always safe.
type allocMetrics struct {
	allocs       prometheus.Counter
	releases     prometheus.Counter
	grows        prometheus.Counter
	grownBytes   prometheus.Counter
	growFailures prometheus.Counter
	splits       prometheus.Counter
	merges       prometheus.Counter
	inUseBytes   prometheus.Gauge
}

func newAllocMetrics(reg prometheus.Registerer, geometry string) *allocMetrics {
	f := promauto.With(reg)
	labels := prometheus.Labels{"geometry": geometry}
	return &allocMetrics{
		allocs: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "buddykit",
			Subsystem:   "alloc",
			Name:        "blocks_granted_total",
			Help:        "Total number of blocks granted.",
			ConstLabels: labels,
		}),
		releases: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "buddykit",
			Subsystem:   "alloc",
			Name:        "blocks_released_total",
			Help:        "Total number of blocks returned to the free lists.",
			ConstLabels: labels,
		}),
		grows: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "buddykit",
			Subsystem:   "alloc",
			Name:        "heap_grows_total",
			Help:        "Total number of heap growths.",
			ConstLabels: labels,
		}),
		grownBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "buddykit",
			Subsystem:   "alloc",
			Name:        "heap_grown_bytes_total",
			Help:        "Total bytes mapped from the heap.",
			ConstLabels: labels,
		}),
		growFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "buddykit",
			Subsystem:   "alloc",
			Name:        "heap_grow_failures_total",
			Help:        "Total heap growth attempts refused by the OS.",
			ConstLabels: labels,
		}),
		splits: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "buddykit",
			Subsystem:   "alloc",
			Name:        "block_splits_total",
			Help:        "Total block splits performed while serving requests.",
			ConstLabels: labels,
		}),
		merges: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "buddykit",
			Subsystem:   "alloc",
			Name:        "block_merges_total",
			Help:        "Total buddy merges performed on release.",
			ConstLabels: labels,
		}),
		inUseBytes: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   "buddykit",
			Subsystem:   "alloc",
			Name:        "in_use_bytes",
			Help:        "Bytes currently granted to callers.",
			ConstLabels: labels,
		}),
	}
}
