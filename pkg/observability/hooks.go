// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about plan computation, cache operations, and module
// scheduling.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which avoids import
// cycles and keeps the library free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlanHooks(&myPlanHooks{})
//	    observability.SetScheduleHooks(&myScheduleHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Plan().OnGraphBuilt(ctx, projects, edges, duration, err)
//	observability.Schedule().OnModuleStart(ctx, "org.example:core")
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Plan Hooks
// =============================================================================

// PlanHooks receives events from plan computation.
type PlanHooks interface {
	// OnLoad records a manifest load.
	OnLoad(ctx context.Context, path string, projects int, duration time.Duration, err error)

	// OnGraphBuilt records reactor graph construction, including failures
	// such as duplicate projects and cycles.
	OnGraphBuilt(ctx context.Context, projects, edges int, duration time.Duration, err error)

	// OnSelect records build-subset selection.
	OnSelect(ctx context.Context, selected, total int, err error)

	// OnRender records rendering of a plan into one output format.
	OnRender(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Schedule Hooks
// =============================================================================

// ScheduleHooks receives events from the module scheduler.
type ScheduleHooks interface {
	// OnModuleStart records a module whose dependencies have all completed.
	OnModuleStart(ctx context.Context, module string)

	// OnModuleComplete records the outcome of a module build.
	OnModuleComplete(ctx context.Context, module string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPlanHooks is a no-op implementation of PlanHooks.
type NoopPlanHooks struct{}

func (NoopPlanHooks) OnLoad(context.Context, string, int, time.Duration, error)    {}
func (NoopPlanHooks) OnGraphBuilt(context.Context, int, int, time.Duration, error) {}
func (NoopPlanHooks) OnSelect(context.Context, int, int, error)                    {}
func (NoopPlanHooks) OnRender(context.Context, string, int, time.Duration, error)  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopScheduleHooks is a no-op implementation of ScheduleHooks.
type NoopScheduleHooks struct{}

func (NoopScheduleHooks) OnModuleStart(context.Context, string)                          {}
func (NoopScheduleHooks) OnModuleComplete(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	planHooks     PlanHooks     = NoopPlanHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	scheduleHooks ScheduleHooks = NoopScheduleHooks{}
	hooksMu       sync.RWMutex
)

// SetPlanHooks registers custom plan hooks.
// This should be called once at application startup.
func SetPlanHooks(h PlanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		planHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetScheduleHooks registers custom schedule hooks.
// This should be called once at application startup.
func SetScheduleHooks(h ScheduleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scheduleHooks = h
	}
}

// Plan returns the registered plan hooks.
func Plan() PlanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return planHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Schedule returns the registered schedule hooks.
func Schedule() ScheduleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scheduleHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	planHooks = NoopPlanHooks{}
	cacheHooks = NoopCacheHooks{}
	scheduleHooks = NoopScheduleHooks{}
}
