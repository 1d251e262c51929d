package daw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicksToSamples(t *testing.T) {
	cases := []struct {
		name   string
		tempo  float64
		sr     uint32
		ticks  uint64
		expect uint64
	}{
		{"120bpm 44100", 120, 44100, PPQN, 22050},
		{"60bpm 44100", 60, 44100, PPQN, 44100},
		{"120bpm 48000", 120, 48000, PPQN, 24000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc := tc
			tctx := NewTimeContext(tc.tempo, NewTimeSignature(4, 4))
			assert.Equal(t, tc.expect, tctx.TicksToSamples(tc.ticks, tc.sr))
		})
	}
}

func TestTicksSamplesRoundTrip(t *testing.T) {
	tempos := []float64{60, 90, 120, 140, 174}
	rates := []uint32{22050, 44100, 48000, 96000}

	for _, tempo := range tempos {
		for _, sr := range rates {
			tctx := NewTimeContext(tempo, NewTimeSignature(4, 4))
			for _, ticks := range []uint64{0, 1, PPQN, PPQN * 4, PPQN * 100} {
				samples := tctx.TicksToSamples(ticks, sr)
				back := tctx.SamplesToTicks(samples, sr)
				diff := int64(back) - int64(ticks)
				if diff < 0 {
					diff = -diff
				}
				assert.LessOrEqualf(t, diff, int64(1),
					"tempo=%v sr=%v ticks=%v back=%v", tempo, sr, ticks, back)
			}
		}
	}
}

func TestTimeSignatureDefaults(t *testing.T) {
	ts := NewTimeSignature(0, 0)
	assert.Equal(t, uint32(4), ts.Numerator)
	assert.Equal(t, uint32(4), ts.Denominator)
	assert.Equal(t, uint64(PPQN*4), ts.TicksPerBar())
}

func TestFormatPosition(t *testing.T) {
	tctx := DefaultTimeContext()

	pos := tctx.FormatPosition(0)
	assert.Equal(t, MusicalPosition{Bar: 1, Beat: 1, Tick: 0}, pos)
	assert.Equal(t, "1.1.000", pos.String())

	pos = tctx.FormatPosition(PPQN)
	assert.Equal(t, MusicalPosition{Bar: 1, Beat: 2, Tick: 0}, pos)

	pos = tctx.FormatPosition(PPQN * 4)
	assert.Equal(t, MusicalPosition{Bar: 2, Beat: 1, Tick: 0}, pos)
}

func TestBarsBeatsTicks(t *testing.T) {
	tctx := DefaultTimeContext()
	assert.Equal(t, uint64(PPQN*4), tctx.BarsToTicks(1))
	assert.Equal(t, float64(1), tctx.TicksToBars(PPQN*4))
}
