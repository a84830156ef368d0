// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about engine actions, history maintenance,
// and layout optimization.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This keeps the core library free of observability frameworks while letting
// hosts plug in whatever backend they use.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnActionApplied(ctx, "add_widget", id)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the layout state machine.
type EngineHooks interface {
	// OnActionApplied records a successfully applied structural action.
	OnActionApplied(ctx context.Context, action, widgetID string)

	// OnActionIgnored records an action that was a no-op (e.g. unknown id).
	OnActionIgnored(ctx context.Context, action, widgetID string)

	// OnHistoryTrimmed records eviction of the oldest undo snapshots.
	OnHistoryTrimmed(ctx context.Context, dropped int)

	// OnPlacementFallback records a requested position that was rejected
	// (invalid or colliding) and replaced by auto-placement.
	OnPlacementFallback(ctx context.Context, widgetType, reason string)
}

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from grid-cell conversion and optimization.
type LayoutHooks interface {
	// OnOptimizeStart records the beginning of a conflict-resolution pass.
	OnOptimizeStart(ctx context.Context, cellCount int)

	// OnOptimizeComplete records the end of a conflict-resolution pass.
	OnOptimizeComplete(ctx context.Context, cellCount, moved int, duration time.Duration)

	// OnOptimizeCeiling records an item that hit the safety ceiling and was
	// pinned there instead of being pushed further down.
	OnOptimizeCeiling(ctx context.Context, cellID string, row int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnActionApplied(context.Context, string, string)     {}
func (NoopEngineHooks) OnActionIgnored(context.Context, string, string)     {}
func (NoopEngineHooks) OnHistoryTrimmed(context.Context, int)               {}
func (NoopEngineHooks) OnPlacementFallback(context.Context, string, string) {}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnOptimizeStart(context.Context, int)                        {}
func (NoopLayoutHooks) OnOptimizeComplete(context.Context, int, int, time.Duration) {}
func (NoopLayoutHooks) OnOptimizeCeiling(context.Context, string, int)              {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any engine use.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any conversions.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	layoutHooks = NoopLayoutHooks{}
}
