package alloc

import (
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
)

// Options configures an Allocator.
//
// Use DefaultOptions() for production-ready defaults.
type Options struct {
	// Geometry selects the block size ladder.
	// Default: DefaultGeometry (32B to 4KB over 8 levels)
	Geometry Geometry

	// Logger receives debug-level events on heap growth and on split and
	// merge cascades.
	// Default: nil (no logging)
	Logger log.Logger

	// Registerer receives the allocator's prometheus collectors. Register at
	// most one allocator per geometry name on a given registerer.
	// Default: nil (collectors stay live but unregistered)
	Registerer prometheus.Registerer

	// DebugChecks enables release-path precondition checks: releasing a
	// misaligned offset, or a block already on its free list, panics instead
	// of corrupting the lists.
	// Default: false
	// Recommendation: enable in tests and soak environments, not in hot paths
	DebugChecks bool
}

// DefaultOptions returns production-ready defaults.
//
// The defaults provide:
//   - the 32B..4KB reference geometry
//   - no logging and no metrics registration
//   - debug checks disabled
func DefaultOptions() Options {
	return Options{
		Geometry: DefaultGeometry,
	}
}
