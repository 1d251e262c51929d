package daw

import "fmt"

// PPQN is the number of ticks per quarter note (beat). It is the single
// fixed time resolution every session, clip, and engine command is
// expressed in.
const PPQN = 960

// TimeSignature describes how beats group into bars.
type TimeSignature struct {
	Numerator   uint32
	Denominator uint32
}

// NewTimeSignature returns a TimeSignature, defaulting to 4/4 if either
// field is zero.
func NewTimeSignature(numerator, denominator uint32) TimeSignature {
	if numerator == 0 {
		numerator = 4
	}
	if denominator == 0 {
		denominator = 4
	}
	return TimeSignature{Numerator: numerator, Denominator: denominator}
}

// BeatsPerBar returns the number of beats in one bar.
func (ts TimeSignature) BeatsPerBar() uint32 {
	return ts.Numerator
}

// TicksPerBar returns the number of ticks in one bar.
func (ts TimeSignature) TicksPerBar() uint64 {
	return PPQN * uint64(ts.Numerator)
}

// TimeContext converts between musical time (ticks, beats, bars) and
// physical time (seconds, samples) for a given tempo and time signature.
// It carries no notion of the wall-clock "now" - it is a pure converter.
type TimeContext struct {
	Tempo         float64
	TimeSignature TimeSignature
}

// NewTimeContext returns a TimeContext for the given tempo (BPM) and time
// signature.
func NewTimeContext(tempo float64, ts TimeSignature) TimeContext {
	return TimeContext{Tempo: tempo, TimeSignature: ts}
}

// DefaultTimeContext returns a TimeContext at 120 BPM, 4/4.
func DefaultTimeContext() TimeContext {
	return NewTimeContext(120.0, NewTimeSignature(4, 4))
}

func (tc TimeContext) TicksToBeats(ticks uint64) float64 {
	return float64(ticks) / float64(PPQN)
}

func (tc TimeContext) BeatsToTicks(beats float64) uint64 {
	return uint64(beats * float64(PPQN))
}

func (tc TimeContext) TicksToBars(ticks uint64) float64 {
	return tc.TicksToBeats(ticks) / float64(tc.TimeSignature.BeatsPerBar())
}

func (tc TimeContext) BarsToTicks(bars float64) uint64 {
	beats := bars * float64(tc.TimeSignature.BeatsPerBar())
	return tc.BeatsToTicks(beats)
}

func (tc TimeContext) TicksToSeconds(ticks uint64) float64 {
	beats := tc.TicksToBeats(ticks)
	return beats * 60.0 / tc.Tempo
}

func (tc TimeContext) SecondsToTicks(seconds float64) uint64 {
	beats := seconds * tc.Tempo / 60.0
	return tc.BeatsToTicks(beats)
}

// TicksToSamples converts a tick count to a sample count at sampleRate,
// rounding toward zero exactly like the seconds-based original.
func (tc TimeContext) TicksToSamples(ticks uint64, sampleRate uint32) uint64 {
	seconds := tc.TicksToSeconds(ticks)
	return uint64(seconds * float64(sampleRate))
}

// SamplesToTicks is the inverse of TicksToSamples; round-trips are only
// guaranteed to within one tick due to floating-point rounding.
func (tc TimeContext) SamplesToTicks(samples uint64, sampleRate uint32) uint64 {
	seconds := float64(samples) / float64(sampleRate)
	return tc.SecondsToTicks(seconds)
}

// MusicalPosition is a 1-based bar.beat.tick display position.
type MusicalPosition struct {
	Bar  uint32
	Beat uint32
	Tick uint32
}

// String renders the position as "bar.beat.tick" with the tick zero-padded
// to three digits, e.g. "2.3.007".
func (p MusicalPosition) String() string {
	return fmt.Sprintf("%d.%d.%03d", p.Bar, p.Beat, p.Tick)
}

// FormatPosition converts an absolute tick count to a 1-based musical
// position under this time context.
func (tc TimeContext) FormatPosition(ticks uint64) MusicalPosition {
	totalBeats := tc.TicksToBeats(ticks)
	beatsPerBar := float64(tc.TimeSignature.BeatsPerBar())

	bar := uint32(totalBeats/beatsPerBar) + 1

	beatInBarF := totalBeats - float64(uint64(totalBeats/beatsPerBar))*beatsPerBar
	beatInBar := uint32(beatInBarF) + 1
	tickInBeat := uint32(ticks % PPQN)

	return MusicalPosition{Bar: bar, Beat: beatInBar, Tick: tickInBeat}
}
