package daw

import "math"

// Sinc interpolation parameters: a 256-tap window, cutoff at 0.95 Nyquist,
// a 4-term Blackman-Harris window, a 256x-oversampled kernel table, and
// linear interpolation between adjacent table entries.
const (
	sincHalfTaps       = 128 // half-width; total window spans 2*sincHalfTaps taps
	sincOversampling   = 256
	sincCutoffFraction = 0.95
)

// sincKernelTable holds a precomputed, oversampled, windowed sinc kernel
// for one cutoff frequency. Linear interpolation between adjacent entries
// approximates the continuous kernel at any fractional tap offset.
type sincKernelTable struct {
	cutoff float64
	table  []float64 // table[i] == kernel(i / sincOversampling), i in [0, sincHalfTaps*sincOversampling]
}

func newSincKernelTable(cutoff float64) *sincKernelTable {
	size := sincHalfTaps*sincOversampling + 1
	table := make([]float64, size)
	for i := range table {
		x := float64(i) / float64(sincOversampling)
		table[i] = cutoff * sincFunc(cutoff*x) * blackmanHarris(x, sincHalfTaps)
	}
	return &sincKernelTable{cutoff: cutoff, table: table}
}

// at evaluates the windowed sinc kernel at signed tap offset x, linearly
// interpolating between the two nearest oversampled table entries.
func (k *sincKernelTable) at(x float64) float64 {
	ax := math.Abs(x)
	if ax >= sincHalfTaps {
		return 0
	}
	pos := ax * float64(sincOversampling)
	idx := int(pos)
	frac := pos - float64(idx)
	if idx+1 >= len(k.table) {
		return k.table[len(k.table)-1]
	}
	return k.table[idx]*(1-frac) + k.table[idx+1]*frac
}

func sincFunc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// blackmanHarris is the 4-term Blackman-Harris window evaluated at tap
// offset x in [-half, half].
func blackmanHarris(x, half float64) float64 {
	const (
		a0 = 0.35875
		a1 = 0.48829
		a2 = 0.14128
		a3 = 0.01168
	)
	n := (x + half) / (2 * half) // normalize to [0, 1]
	return a0 -
		a1*math.Cos(2*math.Pi*n) +
		a2*math.Cos(4*math.Pi*n) -
		a3*math.Cos(6*math.Pi*n)
}

// Resample conforms src to targetRate using windowed-sinc interpolation.
// If src is already at targetRate, the returned buffer shares src's
// identity (a cheap clone) rather than reprocessing.
func Resample(src AudioBuffer, targetRate uint32) (AudioBuffer, error) {
	if src.SampleRate() == targetRate || targetRate == 0 {
		return src.Clone(), nil
	}

	inputFrames := src.Frames()
	channels := int(src.Channels())
	if inputFrames == 0 {
		return NewAudioBuffer(nil, targetRate, src.Channels())
	}

	ratio := float64(targetRate) / float64(src.SampleRate())
	outputFrames := int(math.Ceil(float64(inputFrames) * ratio))

	nyquistScale := 1.0
	if targetRate < src.SampleRate() {
		nyquistScale = ratio
	}
	kernel := newSincKernelTable(sincCutoffFraction * nyquistScale)

	samples := src.Samples()

	// Deinterleave into per-channel buffers for cache-friendly convolution.
	perChannel := make([][]float32, channels)
	for ch := 0; ch < channels; ch++ {
		perChannel[ch] = make([]float32, inputFrames)
		for f := 0; f < inputFrames; f++ {
			perChannel[ch][f] = samples[f*channels+ch]
		}
	}

	out := make([]float32, outputFrames*channels)
	for outFrame := 0; outFrame < outputFrames; outFrame++ {
		srcPos := float64(outFrame) / ratio
		center := int(math.Floor(srcPos))

		lo := center - sincHalfTaps + 1
		if lo < 0 {
			lo = 0
		}
		hi := center + sincHalfTaps
		if hi > inputFrames-1 {
			hi = inputFrames - 1
		}

		for ch := 0; ch < channels; ch++ {
			var acc float64
			chanSamples := perChannel[ch]
			for srcIdx := lo; srcIdx <= hi; srcIdx++ {
				weight := kernel.at(srcPos - float64(srcIdx))
				acc += weight * float64(chanSamples[srcIdx])
			}
			out[outFrame*channels+ch] = float32(acc)
		}
	}

	return NewAudioBuffer(out, targetRate, src.Channels())
}
