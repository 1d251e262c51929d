package daw

import "github.com/korbindeman/goaw/internal/errors"

// Clip is an audio region placed on a track between [StartTick, EndTick).
// AudioOffset is the number of samples, at Audio's own sample rate, to skip
// at the head of Audio when playing - non-zero for clips whose head was
// trimmed away by an overlapping insert.
type Clip struct {
	StartTick   uint64
	EndTick     uint64
	Audio       AudioBuffer
	AudioOffset uint64
	Waveform    WaveformSummary
	Name        string
}

// NewClip builds a Clip, validating StartTick < EndTick.
func NewClip(startTick, endTick uint64, audio AudioBuffer, audioOffset uint64, name string) (Clip, error) {
	if startTick >= endTick {
		return Clip{}, errors.Newf("clip start_tick %d must be < end_tick %d", startTick, endTick).
			Component("daw").
			Category(errors.CategoryClipInsert).
			Context("start_tick", startTick).
			Context("end_tick", endTick).
			Build()
	}
	return Clip{
		StartTick:   startTick,
		EndTick:     endTick,
		Audio:       audio,
		AudioOffset: audioOffset,
		Name:        name,
	}, nil
}

// DurationTicks returns EndTick - StartTick.
func (c Clip) DurationTicks() uint64 {
	return c.EndTick - c.StartTick
}

// WithWaveform returns a copy of the clip carrying the given waveform
// summary, computed separately since it is a pure derived view of Audio.
func (c Clip) WithWaveform(w WaveformSummary) Clip {
	c.Waveform = w
	return c
}

// samplesFor converts a tick span to a sample count at sampleRate, falling
// back to ReferenceTempoBPM when no tempo is supplied.
func samplesFor(deltaTicks uint64, sampleRate uint32, tempoBPM float64) uint64 {
	if tempoBPM <= 0 {
		tempoBPM = ReferenceTempoBPM
	}
	secondsPerTick := (60.0 / tempoBPM) / float64(PPQN)
	seconds := float64(deltaTicks) * secondsPerTick
	return uint64(seconds*float64(sampleRate) + 0.5)
}

// ReferenceTempoBPM is the fallback tempo used to convert tick spans to
// source-sample offsets when a caller passes no tempo. Track.InsertClip
// accepts an explicit tempo, which callers holding a session should prefer.
const ReferenceTempoBPM = 120.0
