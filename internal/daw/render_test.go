package daw

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func monoClipAt(t *testing.T, samples []float32, startTick uint64) Clip {
	t.Helper()
	buf, err := NewAudioBuffer(samples, 44100, 1)
	require.NoError(t, err)
	endTick := startTick + uint64(len(samples))*uint64(PPQN)/44100 + 1
	clip, err := NewClip(startTick, endTick, buf, 0, "hit")
	require.NoError(t, err)
	return clip
}

func tracksAt(t *testing.T, ticks []uint64, name string, value float32) *Track {
	t.Helper()
	track := NewTrack(1, name)
	for _, tick := range ticks {
		c := monoClipAt(t, []float32{value}, tick)
		track.InsertClip(c, 120.0)
	}
	return track
}

func TestRenderTimelineFourOnTheFloor(t *testing.T) {
	kickTicks := []uint64{0, 960, 1920, 2880}
	snareTicks := []uint64{960, 2880}
	hihatTicks := []uint64{0, 480, 960, 1440, 2160, 2400, 2880, 3360}

	kick := tracksAt(t, kickTicks, "kick", 1.0)
	snare := tracksAt(t, snareTicks, "snare", 0.8)
	hihat := tracksAt(t, hihatTicks, "hihat", 0.3)

	timeCtx := NewTimeContext(120.0, NewTimeSignature(4, 4))
	longestEndTick := uint64(3360) + timeCtx.SecondsToTicks(1.0/44100.0)
	minExpectedSamples := timeCtx.TicksToSamples(longestEndTick, 44100)

	buf, err := RenderTimeline([]*Track{kick, snare, hihat}, 120.0, 44100, 2)
	require.NoError(t, err)

	require.GreaterOrEqual(t, uint64(buf.Frames()), minExpectedSamples)

	samples := buf.Samples()
	require.InDelta(t, float64(1.0+0.3), float64(samples[0]), 1e-5) // left: kick+hihat
	require.InDelta(t, float64(1.0+0.3), float64(samples[1]), 1e-5) // right (mono->stereo dup)
}

func TestRenderTimelineSkipsDisabledTracks(t *testing.T) {
	track := tracksAt(t, []uint64{0}, "muted", 1.0)
	track.Enabled = false

	buf, err := RenderTimeline([]*Track{track}, 120.0, 44100, 2)
	require.NoError(t, err)
	require.True(t, buf.IsEmpty())
}

func TestWriteWAVProducesReadableHeader(t *testing.T) {
	samples := []float32{0.1, -0.1, 0.2, -0.2}
	buf, err := NewAudioBuffer(samples, 44100, 2)
	require.NoError(t, err)

	path := t.TempDir() + "/out.wav"
	require.NoError(t, WriteWAV(buf, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "RIFF", string(data[0:4]))
	require.Equal(t, "WAVE", string(data[8:12]))
	require.Equal(t, "fmt ", string(data[12:16]))
	require.Equal(t, "data", string(data[36:40]))
}
