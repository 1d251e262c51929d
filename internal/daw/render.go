package daw

import (
	"bufio"
	"encoding/binary"
	"math"
	"os"

	"github.com/korbindeman/goaw/internal/errors"
)

// renderClip is the sample-space projection of a Clip for offline mixing,
// analogous to EngineClip but built once per render rather than republished
// on every track edit.
type renderClip struct {
	startSample uint64
	endSample   uint64
	audio       AudioBuffer
}

func calculateEndTick(tracks []*Track) uint64 {
	var maxEnd uint64
	for _, track := range tracks {
		if !track.Enabled {
			continue
		}
		if end := track.MaxEndTick(); end > maxEnd {
			maxEnd = end
		}
	}
	return maxEnd
}

// RenderTimeline mixes every enabled track down to a single interleaved
// AudioBuffer at sampleRate/channels, independent of the realtime engine.
// Clips whose audio needs resampling to sampleRate are resampled once up
// front.
func RenderTimeline(tracks []*Track, tempo float64, sampleRate uint32, channels uint16) (AudioBuffer, error) {
	timeCtx := NewTimeContext(tempo, NewTimeSignature(4, 4))
	endTick := calculateEndTick(tracks)
	totalFrames := int(timeCtx.TicksToSamples(endTick, sampleRate))
	outputChannels := int(channels)

	type renderTrack struct {
		volume float32
		clips  []renderClip
	}

	renderTracks := make([]renderTrack, 0, len(tracks))
	for _, track := range tracks {
		if !track.Enabled {
			continue
		}

		clips := make([]renderClip, 0, len(track.Clips))
		for _, clip := range track.Clips {
			audio := clip.Audio
			if audio.SampleRate() != sampleRate {
				resampled, err := Resample(audio, sampleRate)
				if err != nil {
					continue // skip clip if resampling fails; the rest of the mix proceeds
				}
				audio = resampled
			}

			startSample := timeCtx.TicksToSamples(clip.StartTick, sampleRate)
			endSample := startSample + uint64(audio.Frames())
			clips = append(clips, renderClip{startSample: startSample, endSample: endSample, audio: audio})
		}
		renderTracks = append(renderTracks, renderTrack{volume: track.Volume, clips: clips})
	}

	samples := make([]float32, totalFrames*outputChannels)

	for frameIdx := 0; frameIdx < totalFrames; frameIdx++ {
		position := uint64(frameIdx)

		for _, rt := range renderTracks {
			for _, clip := range rt.clips {
				if position < clip.startSample || position >= clip.endSample {
					continue
				}
				sourceFrame := int(position - clip.startSample)
				clipChannels := int(clip.audio.Channels())
				if clipChannels == 0 {
					continue
				}
				clipSamples := clip.audio.Samples()

				for ch := 0; ch < outputChannels; ch++ {
					clipCh := ch % clipChannels
					srcIdx := sourceFrame*clipChannels + clipCh
					dstIdx := frameIdx*outputChannels + ch
					if srcIdx < len(clipSamples) {
						samples[dstIdx] += clipSamples[srcIdx] * rt.volume
					}
				}
			}
		}
	}

	return NewAudioBuffer(samples, sampleRate, channels)
}

// WriteWAV writes buffer to path as a 32-bit IEEE-float WAV file.
//
// go-audio/wav's Encoder targets audio.IntBuffer (integer PCM) and has no
// float sample-format path, so the render path that needs float32 output
// writes the RIFF/fmt/data structure directly via encoding/binary; decoding
// existing sample files still goes through go-audio/wav (see DecodeFile).
func WriteWAV(buffer AudioBuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New(err).
			Component("daw").
			Category(errors.CategoryRenderExport).
			Context("path", path).
			Build()
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	const bitsPerSample = 32
	channels := buffer.Channels()
	sampleRate := buffer.SampleRate()
	byteRate := sampleRate * uint32(channels) * bitsPerSample / 8
	blockAlign := uint16(channels) * bitsPerSample / 8
	dataSize := uint32(len(buffer.Samples())) * bitsPerSample / 8
	riffSize := 36 + dataSize

	writeString(w, "RIFF")
	writeUint32(w, riffSize)
	writeString(w, "WAVE")

	writeString(w, "fmt ")
	writeUint32(w, 16)
	writeUint16(w, 3) // WAVE_FORMAT_IEEE_FLOAT
	writeUint16(w, channels)
	writeUint32(w, sampleRate)
	writeUint32(w, byteRate)
	writeUint16(w, blockAlign)
	writeUint16(w, bitsPerSample)

	writeString(w, "data")
	writeUint32(w, dataSize)
	for _, s := range buffer.Samples() {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(s))
		if _, err := w.Write(buf[:]); err != nil {
			return errors.New(err).
				Component("daw").
				Category(errors.CategoryRenderExport).
				Context("path", path).
				Build()
		}
	}

	if err := w.Flush(); err != nil {
		return errors.New(err).
			Component("daw").
			Category(errors.CategoryRenderExport).
			Context("path", path).
			Build()
	}
	return nil
}

func writeString(w *bufio.Writer, s string) { _, _ = w.WriteString(s) }

func writeUint32(w *bufio.Writer, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, _ = w.Write(buf[:])
}

func writeUint16(w *bufio.Writer, v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, _ = w.Write(buf[:])
}
