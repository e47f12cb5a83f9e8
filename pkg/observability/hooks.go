// Package observability provides hooks for metrics, tracing, and logging.
//
// The generation engine emits events through hook interfaces without
// depending on a specific backend. The binary registers implementations at
// startup; libraries read them through the accessor functions.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// [TracingHooks] forwards events to OpenTelemetry as span events on the
// span found in the context, and [Tracer] returns the tracer the pipeline
// opens its spans with.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTracerProvider(tp)
//	    observability.SetGenerationHooks(observability.TracingHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Generation().OnGenerateStart(ctx, "erdos-renyi", 10)
//	// ... generate ...
//	observability.Generation().OnGenerateComplete(ctx, "erdos-renyi", 20, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Driver phases reported to hooks.
const (
	PhaseNodes         = "nodes"
	PhaseRelationships = "relationships"
)

// =============================================================================
// Generation Hooks
// =============================================================================

// GenerationHooks receives events from the generation driver.
type GenerationHooks interface {
	// Edge list generation
	OnGenerateStart(ctx context.Context, model string, nodes int)
	OnGenerateComplete(ctx context.Context, model string, edges int, duration time.Duration, err error)

	// Materialization phases (PhaseNodes, PhaseRelationships)
	OnPhaseStart(ctx context.Context, phase string, total int)
	OnPhaseComplete(ctx context.Context, phase string, done int, duration time.Duration, err error)
}

// =============================================================================
// Sink Hooks
// =============================================================================

// SinkHooks receives events about sink interaction.
type SinkHooks interface {
	// OnBatchCommit records a committed batch of size operations.
	OnBatchCommit(ctx context.Context, phase string, batch, size int, duration time.Duration)

	// OnSinkError records a failed sink operation.
	OnSinkError(ctx context.Context, op string, err error)
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
// No-op Implementations
// =============================================================================

// NoopGenerationHooks is a no-op implementation of GenerationHooks.
type NoopGenerationHooks struct{}

func (NoopGenerationHooks) OnGenerateStart(context.Context, string, int) {}
func (NoopGenerationHooks) OnGenerateComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopGenerationHooks) OnPhaseStart(context.Context, string, int)                        {}
func (NoopGenerationHooks) OnPhaseComplete(context.Context, string, int, time.Duration, error) {}

// NoopSinkHooks is a no-op implementation of SinkHooks.
type NoopSinkHooks struct{}

func (NoopSinkHooks) OnBatchCommit(context.Context, string, int, int, time.Duration) {}
func (NoopSinkHooks) OnSinkError(context.Context, string, error)                     {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	generationHooks GenerationHooks = NoopGenerationHooks{}
	sinkHooks       SinkHooks       = NoopSinkHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	hooksMu         sync.RWMutex
)

// SetGenerationHooks registers custom generation hooks.
// This should be called once at application startup.
func SetGenerationHooks(h GenerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generationHooks = h
	}
}

// SetSinkHooks registers custom sink hooks.
func SetSinkHooks(h SinkHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sinkHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Generation returns the registered generation hooks.
func Generation() GenerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generationHooks
}

// Sink returns the registered sink hooks.
func Sink() SinkHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sinkHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks and the tracer provider to their no-op
// defaults. This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	generationHooks = NoopGenerationHooks{}
	sinkHooks = NoopSinkHooks{}
	cacheHooks = NoopCacheHooks{}
	hooksMu.Unlock()
	SetTracerProvider(nil)
}
