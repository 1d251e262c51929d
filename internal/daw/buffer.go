package daw

import (
	"math"

	"github.com/google/uuid"
	"github.com/korbindeman/goaw/internal/errors"
)

// AudioBuffer is an immutable, cheaply-cloneable block of interleaved
// floating point audio samples. Cloning an AudioBuffer never copies the
// underlying sample data: the slice is shared, and the buffer lives until
// its last holder drops it.
//
// id is a stable identity independent of the slice header, used as the
// resample cache key - two buffers built from the same samples via Clone
// share an id, but two buffers built from identical sample content via
// NewAudioBuffer do not (they are different sources).
type AudioBuffer struct {
	samples    []float32
	sampleRate uint32
	channels   uint16
	id         uuid.UUID
}

// NewAudioBuffer wraps interleaved samples as an AudioBuffer. The slice is
// retained, not copied; callers must not mutate it afterwards.
func NewAudioBuffer(samples []float32, sampleRate uint32, channels uint16) (AudioBuffer, error) {
	if channels == 0 {
		return AudioBuffer{}, errors.Newf("audio buffer channels must be > 0").
			Component("daw").
			Category(errors.CategoryValidation).
			Build()
	}
	if len(samples)%int(channels) != 0 {
		return AudioBuffer{}, errors.Newf("sample count %d not divisible by channel count %d", len(samples), channels).
			Component("daw").
			Category(errors.CategoryValidation).
			Build()
	}
	return AudioBuffer{samples: samples, sampleRate: sampleRate, channels: channels, id: uuid.New()}, nil
}

// ID returns the buffer's identity, stable across Clone but distinct
// between independently constructed buffers, even with identical content.
func (b AudioBuffer) ID() uuid.UUID { return b.id }

// Samples returns the underlying interleaved sample slice. Treat as
// read-only.
func (b AudioBuffer) Samples() []float32 { return b.samples }

// SampleRate returns the buffer's sample rate in Hz.
func (b AudioBuffer) SampleRate() uint32 { return b.sampleRate }

// Channels returns the interleaved channel count.
func (b AudioBuffer) Channels() uint16 { return b.channels }

// Len returns the total interleaved sample count (frames * channels).
func (b AudioBuffer) Len() int { return len(b.samples) }

// IsEmpty reports whether the buffer holds no samples.
func (b AudioBuffer) IsEmpty() bool { return len(b.samples) == 0 }

// Frames returns the number of audio frames (samples per channel).
func (b AudioBuffer) Frames() int {
	if b.channels == 0 {
		return 0
	}
	return len(b.samples) / int(b.channels)
}

// DurationSecs returns the buffer's duration in seconds.
func (b AudioBuffer) DurationSecs() float64 {
	if b.sampleRate == 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.sampleRate)
}

// Channel returns every sample belonging to channel k (0-based), extracted
// from the interleaved layout. This allocates - it is not meant for the
// realtime audio callback.
func (b AudioBuffer) Channel(k uint16) []float32 {
	if k >= b.channels {
		return nil
	}
	frames := b.Frames()
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		out[i] = b.samples[i*int(b.channels)+int(k)]
	}
	return out
}

// Clone returns a cheap copy of the buffer: the sample slice and identity
// are shared, never copied.
func (b AudioBuffer) Clone() AudioBuffer { return b }

// Peak returns the maximum absolute sample magnitude in the buffer, used by
// clip-level metering.
func (b AudioBuffer) Peak() float32 {
	var peak float32
	for _, s := range b.samples {
		a := float32(math.Abs(float64(s)))
		if a > peak {
			peak = a
		}
	}
	return peak
}
