package daw

// PeakPair is the (min, max) mono amplitude pair for one waveform bucket.
type PeakPair struct {
	Min float32
	Max float32
}

// WaveformSummary is a downsampled min/max peak representation of an
// AudioBuffer, suitable for rendering a waveform view without holding onto
// the full sample data. It is a pure function of the buffer it summarizes.
type WaveformSummary struct {
	Peaks            []PeakPair
	SamplesPerBucket int
}

// NewWaveformSummary mixes an AudioBuffer down to mono and downsamples it
// into buckets of samplesPerBucket frames, recording the min/max of each.
func NewWaveformSummary(buf AudioBuffer, samplesPerBucket int) WaveformSummary {
	if samplesPerBucket <= 0 {
		samplesPerBucket = 512
	}

	frames := buf.Frames()
	channels := int(buf.Channels())
	samples := buf.Samples()

	numBuckets := (frames + samplesPerBucket - 1) / samplesPerBucket
	peaks := make([]PeakPair, 0, numBuckets)

	for bucket := 0; bucket < numBuckets; bucket++ {
		start := bucket * samplesPerBucket
		end := min((bucket+1)*samplesPerBucket, frames)

		var minVal, maxVal float32
		for frame := start; frame < end; frame++ {
			var sum float32
			for ch := 0; ch < channels; ch++ {
				idx := frame*channels + ch
				if idx < len(samples) {
					sum += samples[idx]
				}
			}
			mono := sum / float32(channels)
			if frame == start {
				minVal, maxVal = mono, mono
			}
			if mono < minVal {
				minVal = mono
			}
			if mono > maxVal {
				maxVal = mono
			}
		}

		peaks = append(peaks, PeakPair{Min: minVal, Max: maxVal})
	}

	return WaveformSummary{Peaks: peaks, SamplesPerBucket: samplesPerBucket}
}
