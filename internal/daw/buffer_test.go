package daw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAudioBuffer(t *testing.T) {
	t.Run("valid stereo buffer", func(t *testing.T) {
		buf, err := NewAudioBuffer([]float32{0.1, 0.2, 0.3, 0.4}, 44100, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, buf.Frames())
		assert.Equal(t, uint32(44100), buf.SampleRate())
		assert.Equal(t, uint16(2), buf.Channels())
		assert.Equal(t, buf.Frames()*int(buf.Channels()), buf.Len())
	})

	t.Run("rejects zero channels", func(t *testing.T) {
		_, err := NewAudioBuffer([]float32{0.1}, 44100, 0)
		require.Error(t, err)
	})

	t.Run("rejects indivisible sample count", func(t *testing.T) {
		_, err := NewAudioBuffer([]float32{0.1, 0.2, 0.3}, 44100, 2)
		require.Error(t, err)
	})

	t.Run("empty buffer is valid", func(t *testing.T) {
		buf, err := NewAudioBuffer(nil, 44100, 2)
		require.NoError(t, err)
		assert.True(t, buf.IsEmpty())
		assert.Equal(t, 0, buf.Frames())
	})
}

func TestAudioBufferClone(t *testing.T) {
	buf, err := NewAudioBuffer([]float32{1, 2, 3, 4}, 44100, 2)
	require.NoError(t, err)

	clone := buf.Clone()
	assert.Equal(t, buf.ID(), clone.ID(), "clone must share identity")
	assert.Equal(t, buf.SampleRate(), clone.SampleRate())
}

func TestAudioBufferDistinctIdentity(t *testing.T) {
	a, err := NewAudioBuffer([]float32{1, 2}, 44100, 1)
	require.NoError(t, err)
	b, err := NewAudioBuffer([]float32{1, 2}, 44100, 1)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID(), "independently constructed buffers have distinct identity even with identical content")
}

func TestAudioBufferChannel(t *testing.T) {
	buf, err := NewAudioBuffer([]float32{1, -1, 2, -2, 3, -3}, 44100, 2)
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 2, 3}, buf.Channel(0))
	assert.Equal(t, []float32{-1, -2, -3}, buf.Channel(1))
	assert.Nil(t, buf.Channel(2))
}

func TestAudioBufferDurationSecs(t *testing.T) {
	buf, err := NewAudioBuffer(make([]float32, 44100*2), 44100, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, buf.DurationSecs(), 1e-9)
}

func TestAudioBufferPeak(t *testing.T) {
	buf, err := NewAudioBuffer([]float32{0.1, -0.9, 0.3}, 44100, 1)
	require.NoError(t, err)
	assert.InDelta(t, float32(0.9), buf.Peak(), 1e-6)
}
