package daw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateSineWave(t *testing.T, frequency float64, sampleRate uint32, durationSecs float64, channels uint16) AudioBuffer {
	t.Helper()
	numFrames := int(float64(sampleRate) * durationSecs)
	samples := make([]float32, numFrames*int(channels))
	for i := 0; i < numFrames; i++ {
		ti := float64(i) / float64(sampleRate)
		s := float32(math.Sin(2 * math.Pi * frequency * ti))
		for ch := 0; ch < int(channels); ch++ {
			samples[i*int(channels)+ch] = s
		}
	}
	buf, err := NewAudioBuffer(samples, sampleRate, channels)
	require.NoError(t, err)
	return buf
}

func countZeroCrossings(samples []float32) int {
	count := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] < 0 && samples[i] >= 0) || (samples[i-1] >= 0 && samples[i] < 0) {
			count++
		}
	}
	return count
}

func TestResampleSameRateIsCheapClone(t *testing.T) {
	buf := generateSineWave(t, 440, 44100, 0.1, 2)
	out, err := Resample(buf, 44100)
	require.NoError(t, err)
	assert.Equal(t, buf.ID(), out.ID())
}

func TestResampleUpsampling(t *testing.T) {
	buf := generateSineWave(t, 440, 44100, 0.1, 2)
	originalFrames := buf.Frames()

	out, err := Resample(buf, 48000)
	require.NoError(t, err)
	assert.Equal(t, uint32(48000), out.SampleRate())
	assert.Equal(t, uint16(2), out.Channels())

	expected := float64(originalFrames) * 48000.0 / 44100.0
	tolerance := expected * 0.03
	assert.InDelta(t, expected, float64(out.Frames()), tolerance)
}

func TestResampleDownsampling(t *testing.T) {
	buf := generateSineWave(t, 440, 48000, 0.1, 2)
	originalFrames := buf.Frames()

	out, err := Resample(buf, 44100)
	require.NoError(t, err)
	assert.Equal(t, uint32(44100), out.SampleRate())

	expected := float64(originalFrames) * 44100.0 / 48000.0
	tolerance := expected * 0.03
	assert.InDelta(t, expected, float64(out.Frames()), tolerance)
}

func TestResamplePreservesFrequency(t *testing.T) {
	buf := generateSineWave(t, 440, 44100, 0.1, 1)
	out, err := Resample(buf, 48000)
	require.NoError(t, err)

	crossings := countZeroCrossings(out.Samples())
	duration := float64(out.Frames()) / float64(out.SampleRate())
	estimatedFreq := float64(crossings) / (2 * duration)

	assert.InDelta(t, 440, estimatedFreq, 22) // 5% tolerance
}

func TestResampleExtremeRatio(t *testing.T) {
	buf := generateSineWave(t, 440, 22050, 0.05, 2)
	originalFrames := buf.Frames()

	out, err := Resample(buf, 96000)
	require.NoError(t, err)
	assert.Equal(t, uint32(96000), out.SampleRate())

	expected := float64(originalFrames) * 96000.0 / 22050.0
	tolerance := expected * 0.12
	assert.InDelta(t, expected, float64(out.Frames()), tolerance)
}

func TestResampleMonoStaysMono(t *testing.T) {
	buf := generateSineWave(t, 440, 44100, 0.05, 1)
	out, err := Resample(buf, 48000)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), out.Channels())
}

func TestResampleEmptyBuffer(t *testing.T) {
	buf, err := NewAudioBuffer(nil, 44100, 2)
	require.NoError(t, err)
	out, err := Resample(buf, 48000)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Frames())
}
