package errors

import (
	"fmt"
	"testing"
)

// BenchmarkErrorCreationNoTelemetry tests error creation performance when no
// event publisher is registered.
func BenchmarkErrorCreationNoTelemetry(b *testing.B) {
	SetEventPublisher(nil)

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		err := fmt.Errorf("test error")
		_ = New(err).
			Component("test").
			Category(CategoryGeneric).
			Build()
	}
}

// BenchmarkErrorCreationNoTelemetryAutoDetect tests error creation with
// auto-detection when no event publisher is registered.
func BenchmarkErrorCreationNoTelemetryAutoDetect(b *testing.B) {
	SetEventPublisher(nil)

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		err := fmt.Errorf("test error")
		_ = New(err).Build() // Let it auto-detect component and category
	}
}

// BenchmarkErrorCreationWithContext tests error creation with context when
// no event publisher is registered.
func BenchmarkErrorCreationWithContext(b *testing.B) {
	SetEventPublisher(nil)

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		err := fmt.Errorf("test error")
		_ = New(err).
			Component("test").
			Category(CategoryGeneric).
			Context("operation", "test_op").
			Context("count", 42).
			Build()
	}
}

// BenchmarkErrorCreationWithEventBus tests error creation when an event
// publisher is registered and every Build triggers a publish.
func BenchmarkErrorCreationWithEventBus(b *testing.B) {
	SetEventPublisher(&recordingPublisher{})
	defer SetEventPublisher(nil)

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		err := fmt.Errorf("queue full dropping frame")
		_ = New(err).
			Component("daw").
			Category(CategoryQueueFull).
			Context("queue", "status").
			Build()
	}
}
