package daw

import "sort"

// Track is an ordered, disjoint sequence of clips plus mixer parameters.
// Clips are kept sorted ascending by StartTick and pairwise disjoint; both
// invariants are enforced exclusively through InsertClip.
type Track struct {
	ID      uint64
	Name    string
	Clips   []Clip
	Volume  float32 // [0, 1]
	Pan     float32 // [-1, 1]
	Enabled bool
	Solo    bool
}

// NewTrack returns an empty, enabled track at unity volume and centered pan.
func NewTrack(id uint64, name string) *Track {
	return &Track{
		ID:      id,
		Name:    name,
		Volume:  1.0,
		Pan:     0.0,
		Enabled: true,
	}
}

// FromClips builds a track by repeatedly inserting clips into an initially
// empty track - later clips trump earlier ones on overlap, which makes
// project loading deterministic regardless of storage order.
func FromClips(id uint64, name string, clips []Clip, tempoBPM float64) *Track {
	t := NewTrack(id, name)
	for _, c := range clips {
		t.InsertClip(c, tempoBPM)
	}
	return t
}

// InsertClip resolves overlaps between newClip and the track's existing
// clips, giving newClip absolute priority: existing clips are trimmed,
// split, or dropped so the result covers exactly the union of the old
// spans minus newClip's span, plus newClip itself.
//
// tempoBPM governs the tick->sample conversion used for AudioOffset
// adjustments on trimmed/split clips; passing 0 falls back to
// ReferenceTempoBPM.
func (t *Track) InsertClip(newClip Clip, tempoBPM float64) {
	if newClip.StartTick >= newClip.EndTick {
		return // degenerate clip, discard (InvariantViolation recovery)
	}

	n0, n1 := newClip.StartTick, newClip.EndTick
	result := make([]Clip, 0, len(t.Clips)+1)

	for _, existing := range t.Clips {
		e0, e1 := existing.StartTick, existing.EndTick

		switch {
		case n1 <= e0 || e1 <= n0:
			// Disjoint (adjacency is not overlap) - keep unchanged.
			result = append(result, existing)

		case n0 <= e0 && n1 >= e1:
			// New clip completely covers existing - drop it.
			continue

		case e0 < n0 && n1 < e1:
			// New clip strictly inside - split into left/right remnants.
			left := existing
			left.EndTick = n0
			if left.StartTick < left.EndTick {
				result = append(result, left)
			}

			right := existing
			right.StartTick = n1
			right.AudioOffset = existing.AudioOffset + samplesFor(n1-e0, existing.Audio.SampleRate(), tempoBPM)
			if right.StartTick < right.EndTick {
				result = append(result, right)
			}

		case n0 <= e0 && e0 < n1 && n1 < e1:
			// New clip covers existing's start - trim existing's head.
			trimmed := existing
			trimmed.StartTick = n1
			trimmed.AudioOffset = existing.AudioOffset + samplesFor(n1-e0, existing.Audio.SampleRate(), tempoBPM)
			if trimmed.StartTick < trimmed.EndTick {
				result = append(result, trimmed)
			}

		default:
			// e0 < n0 < e1 <= n1: new clip covers existing's end - trim tail.
			trimmed := existing
			trimmed.EndTick = n0
			if trimmed.StartTick < trimmed.EndTick {
				result = append(result, trimmed)
			}
		}
	}

	result = append(result, newClip)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTick < result[j].StartTick
	})
	t.Clips = result
}

// MaxEndTick returns the greatest EndTick across the track's clips, or 0 if
// the track holds no clips.
func (t *Track) MaxEndTick() uint64 {
	var max uint64
	for _, c := range t.Clips {
		if c.EndTick > max {
			max = c.EndTick
		}
	}
	return max
}
