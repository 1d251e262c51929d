// Package demo builds ready-made drum patterns (four-on-the-floor, hip-hop,
// bossa) over internal/daw's timeline model, so the play and render
// subcommands have something to work with without requiring a project file.
package demo

import (
	"github.com/korbindeman/goaw/internal/daw"
)

// Pattern names accepted by the play and render CLI subcommands.
const (
	PatternFourOnTheFloor = "four-on-the-floor"
	PatternHipHop         = "hip-hop"
	PatternBossa          = "bossa"
)

func beat(n uint64) uint64  { return daw.PPQN * n }
func half(n uint64) uint64  { return daw.PPQN*n + daw.PPQN/2 }
func quart(n uint64) uint64 { return daw.PPQN*n - daw.PPQN/4 }

func insertHits(t *daw.Track, audio daw.AudioBuffer, frames int, ticks []uint64, tempo float64) {
	for _, tick := range ticks {
		endTick := tick + uint64(frames)*daw.PPQN/uint64(audio.SampleRate())
		if endTick <= tick {
			endTick = tick + 1
		}
		clip, err := daw.NewClip(tick, endTick, audio, 0, "hit")
		if err != nil {
			continue
		}
		t.InsertClip(clip, tempo)
	}
}

// FourOnTheFloor builds a kick/snare/hihat four-on-the-floor pattern at
// 120 BPM over one bar, reading its samples from samplesRoot via
// internal/daw's WAV decoder.
func FourOnTheFloor(samplesRoot string) ([]*daw.Track, error) {
	const tempo = 120.0
	kick, err := daw.DecodeFile(samplesRoot, "cr78/kick.wav")
	if err != nil {
		return nil, err
	}
	snare, err := daw.DecodeFile(samplesRoot, "cr78/snare.wav")
	if err != nil {
		return nil, err
	}
	hihat, err := daw.DecodeFile(samplesRoot, "cr78/hihat.wav")
	if err != nil {
		return nil, err
	}

	kickTrack := daw.NewTrack(0, "Kick")
	insertHits(kickTrack, kick, kick.Frames(), []uint64{beat(0), beat(1), beat(2), beat(3)}, tempo)

	snareTrack := daw.NewTrack(1, "Snare")
	insertHits(snareTrack, snare, snare.Frames(), []uint64{beat(1), beat(3)}, tempo)

	hihatTrack := daw.NewTrack(2, "Hi-Hat")
	insertHits(hihatTrack, hihat, hihat.Frames(), []uint64{
		beat(0), half(0), beat(1), half(1), beat(2), half(2), beat(3), half(3),
	}, tempo)

	return []*daw.Track{kickTrack, snareTrack, hihatTrack}, nil
}

// HipHopPattern builds a syncopated kick/snare/hihat pattern at 120 BPM.
func HipHopPattern(samplesRoot string) ([]*daw.Track, error) {
	const tempo = 120.0
	kick, err := daw.DecodeFile(samplesRoot, "cr78/kick-accent.wav")
	if err != nil {
		return nil, err
	}
	snare, err := daw.DecodeFile(samplesRoot, "cr78/snare-accent.wav")
	if err != nil {
		return nil, err
	}
	hihat, err := daw.DecodeFile(samplesRoot, "cr78/hihat.wav")
	if err != nil {
		return nil, err
	}

	kickTrack := daw.NewTrack(0, "Kick")
	insertHits(kickTrack, kick, kick.Frames(), []uint64{beat(0), quart(2)}, tempo)

	snareTrack := daw.NewTrack(1, "Snare")
	insertHits(snareTrack, snare, snare.Frames(), []uint64{beat(1), beat(3)}, tempo)

	hihatTrack := daw.NewTrack(2, "Hi-Hat")
	insertHits(hihatTrack, hihat, hihat.Frames(), []uint64{
		beat(0), half(0), beat(1), half(1), beat(2), half(2), beat(3), half(3),
	}, tempo)

	return []*daw.Track{kickTrack, snareTrack, hihatTrack}, nil
}

// BossaPattern builds a kick/rim/conga bossa nova pattern at 120 BPM.
func BossaPattern(samplesRoot string) ([]*daw.Track, error) {
	const tempo = 120.0
	kick, err := daw.DecodeFile(samplesRoot, "cr78/kick.wav")
	if err != nil {
		return nil, err
	}
	rim, err := daw.DecodeFile(samplesRoot, "cr78/rim.wav")
	if err != nil {
		return nil, err
	}
	conga, err := daw.DecodeFile(samplesRoot, "cr78/conga-l.wav")
	if err != nil {
		return nil, err
	}

	kickTrack := daw.NewTrack(0, "Kick")
	insertHits(kickTrack, kick, kick.Frames(), []uint64{beat(0), beat(2)}, tempo)

	rimTrack := daw.NewTrack(1, "Rim")
	insertHits(rimTrack, rim, rim.Frames(), []uint64{half(0), half(1), half(2), beat(3)}, tempo)

	congaTrack := daw.NewTrack(2, "Conga")
	insertHits(congaTrack, conga, conga.Frames(), []uint64{beat(1), half(3)}, tempo)

	return []*daw.Track{kickTrack, rimTrack, congaTrack}, nil
}

// Build dispatches on a pattern name, returning the tracks for that preset.
func Build(name, samplesRoot string) ([]*daw.Track, error) {
	switch name {
	case PatternFourOnTheFloor:
		return FourOnTheFloor(samplesRoot)
	case PatternHipHop:
		return HipHopPattern(samplesRoot)
	case PatternBossa:
		return BossaPattern(samplesRoot)
	default:
		return FourOnTheFloor(samplesRoot)
	}
}
