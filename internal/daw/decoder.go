package daw

import (
	"os"

	"github.com/go-audio/wav"
	"github.com/korbindeman/goaw/internal/daw/project"
	"github.com/korbindeman/goaw/internal/errors"
)

// DecodeFile resolves path against samplesRoot (as given, samplesRoot/path,
// samplesRoot/*/basename(path), first existing wins) and decodes it into an
// AudioBuffer via go-audio/wav. WAV is the one file format this engine
// consumes; arbitrary codec decoding is out of scope.
func DecodeFile(samplesRoot, path string) (AudioBuffer, error) {
	resolved, ok := project.ResolveSamplePath(samplesRoot, path)
	if !ok {
		return AudioBuffer{}, errors.Newf("sample not found: %s", path).
			Component("daw").
			Category(errors.CategoryProjectParse).
			Context("path", path).
			Context("samples_root", samplesRoot).
			Build()
	}
	return decodeFileDirect(resolved)
}

func decodeFileDirect(path string) (AudioBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return AudioBuffer{}, errors.New(err).
			Component("daw").
			Category(errors.CategoryProjectParse).
			Context("path", path).
			Build()
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return AudioBuffer{}, errors.Newf("not a valid WAV file: %s", path).
			Component("daw").
			Category(errors.CategoryProjectParse).
			Context("path", path).
			Build()
	}

	intBuf, err := decoder.FullPCMBuffer()
	if err != nil {
		return AudioBuffer{}, errors.New(err).
			Component("daw").
			Category(errors.CategoryProjectParse).
			Context("path", path).
			Build()
	}

	// IntBuffer.AsFloatBuffer casts ints directly without normalizing, so
	// normalization to [-1, 1] happens here against the source bit depth.
	peak := float32(int(1) << (uint(intBuf.SourceBitDepth) - 1))
	samples := make([]float32, len(intBuf.Data))
	for i, s := range intBuf.Data {
		samples[i] = float32(s) / peak
	}

	return NewAudioBuffer(samples, uint32(decoder.SampleRate), uint16(decoder.NumChans))
}
