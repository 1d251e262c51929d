// Package errors - event bus integration
package errors

import (
	"sync/atomic"
)

// EventPublisher is an interface for publishing error events
// This interface allows the errors package to publish events without
// importing a higher-level event bus package, avoiding circular dependencies
type EventPublisher interface {
	TryPublish(event any) bool
}

// Global event publisher (set by whatever package owns the event bus)
var globalEventPublisher atomic.Value // stores *EventPublisher

// hasActiveReporting gates the slow auto-detection path in ErrorBuilder.Build;
// it is true only once a publisher has been registered.
var hasActiveReporting atomic.Bool

// SetEventPublisher sets the global event publisher; nil clears it.
func SetEventPublisher(publisher EventPublisher) {
	globalEventPublisher.Store(&publisher)
	hasActiveReporting.Store(publisher != nil)
}

// publishToEventBus publishes an error to the event bus if available
func publishToEventBus(ee *EnhancedError) {
	stored := globalEventPublisher.Load()
	if stored == nil {
		return
	}
	eventPublisher := *stored.(*EventPublisher)
	if eventPublisher == nil {
		return
	}
	eventPublisher.TryPublish(ee)
}

// reportToTelemetry publishes the error to the event bus, if one is registered.
func reportToTelemetry(ee *EnhancedError) {
	if !hasActiveReporting.Load() {
		return
	}
	publishToEventBus(ee)
	ee.MarkReported()
}
