package demo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHit(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, 44100, 16, 1, 1)
	buf := &audio.IntBuffer{
		Data:           []int{1000, -1000, 500},
		Format:         &audio.Format{NumChannels: 1, SampleRate: 44100},
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func setupSamples(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{
		"cr78/kick.wav", "cr78/snare.wav", "cr78/hihat.wav",
		"cr78/kick-accent.wav", "cr78/snare-accent.wav",
		"cr78/rim.wav", "cr78/conga-l.wav",
	} {
		writeHit(t, root, name)
	}
	return root
}

func TestFourOnTheFloorBuildsThreeTracks(t *testing.T) {
	root := setupSamples(t)
	tracks, err := FourOnTheFloor(root)
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	assert.Len(t, tracks[0].Clips, 4) // kick
	assert.Len(t, tracks[1].Clips, 2) // snare
	assert.Len(t, tracks[2].Clips, 8) // hihat
}

func TestHipHopPatternBuildsThreeTracks(t *testing.T) {
	root := setupSamples(t)
	tracks, err := HipHopPattern(root)
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	assert.Len(t, tracks[0].Clips, 2)
}

func TestBossaPatternBuildsThreeTracks(t *testing.T) {
	root := setupSamples(t)
	tracks, err := BossaPattern(root)
	require.NoError(t, err)
	require.Len(t, tracks, 3)
}

func TestBuildDispatchesByName(t *testing.T) {
	root := setupSamples(t)
	tracks, err := Build(PatternBossa, root)
	require.NoError(t, err)
	require.Len(t, tracks, 3)

	tracks, err = Build("unknown", root)
	require.NoError(t, err)
	require.Len(t, tracks, 3)
}

func TestFourOnTheFloorMissingSampleErrors(t *testing.T) {
	_, err := FourOnTheFloor(t.TempDir())
	assert.Error(t, err)
}
