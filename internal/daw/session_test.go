package daw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaybackStateString(t *testing.T) {
	assert.Equal(t, "stopped", Stopped.String())
	assert.Equal(t, "playing", Playing.String())
	assert.Equal(t, "paused", Paused.String())
}

func TestPlaybackStateIsPlaying(t *testing.T) {
	assert.True(t, Playing.IsPlaying())
	assert.False(t, Paused.IsPlaying())
	assert.False(t, Stopped.IsPlaying())
}

func TestResampleCacheKeyDistinguishesRates(t *testing.T) {
	buf, err := NewAudioBuffer([]float32{0, 0}, 44100, 1)
	assert.NoError(t, err)

	a := resampleCacheKey{source: buf.ID(), rate: 44100}
	b := resampleCacheKey{source: buf.ID(), rate: 48000}
	assert.NotEqual(t, a, b)

	clone := buf.Clone()
	c := resampleCacheKey{source: clone.ID(), rate: 44100}
	assert.Equal(t, a, c, "a clone shares its source's cache entries")
}
