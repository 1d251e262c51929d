package daw

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/korbindeman/goaw/internal/errors"
)

// EngineClip is the sample-space projection of a Clip the Session hands to
// the engine: Audio is already resampled to the device's sample rate, and
// StartSample/EndSample are absolute timeline positions in samples.
type EngineClip struct {
	StartSample uint64
	EndSample   uint64
	Audio       AudioBuffer
}

// EngineTrack is the engine-side mirror of Track, carrying only what the
// mix loop needs.
type EngineTrack struct {
	Clips   []EngineClip
	Volume  float32
	Pan     float32 // [-1, 1]; applied to stereo output only
	Enabled bool
	Solo    bool
}

// CommandKind identifies an EngineCommand's variant.
type CommandKind uint8

const (
	CommandPlay CommandKind = iota
	CommandPause
	CommandSeek
)

// EngineCommand is a control->engine message: Play/Pause carry no payload,
// Seek carries Sample.
type EngineCommand struct {
	Kind   CommandKind
	Sample uint64
}

// EngineStatus is an engine->control message: the current sample position,
// pushed roughly once per callback.
type EngineStatus struct {
	Position uint64
}

// playbackState is the engine callback's private state machine: paused is
// the implicit initial state, and there is no stopped at this layer - the
// session models Stop as Pause plus Seek(0).
type playbackState struct {
	playing  bool
	position uint64
	degraded bool
}

// Engine owns the realtime audio device stream and the three lock-free
// queues connecting it to the control thread (commands/tracks in,
// status out). Nothing here may allocate on the audio callback path.
type Engine struct {
	commands *ringBuffer[EngineCommand]
	tracksIn *ringBuffer[[]EngineTrack]
	status   *ringBuffer[EngineStatus]

	sampleRate     uint32
	outputChannels int
	outputFormat   malgo.FormatType
	metrics        *Metrics

	ctx    *malgo.AllocatedContext
	device *malgo.Device
}

// StartEngine opens deviceName's playback stream (or the system default
// when empty) and installs the audio callback.
func StartEngine(deviceName string, metrics *Metrics) (*Engine, error) {
	backends, err := backendsForPlatform()
	if err != nil {
		return nil, err
	}

	ctx, err := malgo.InitContext(backends, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, errors.New(err).
			Component("daw").
			Category(errors.CategoryAudioDevice).
			Context("operation", "init_context").
			Build()
	}

	infos, err := ctx.Devices(malgo.Playback)
	if err != nil {
		_ = ctx.Uninit()
		return nil, errors.New(err).
			Component("daw").
			Category(errors.CategoryAudioDevice).
			Context("operation", "enumerate_devices").
			Build()
	}

	deviceInfo, err := selectDevice(infos, deviceName)
	if err != nil {
		_ = ctx.Uninit()
		return nil, err
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = 2
	deviceConfig.Playback.DeviceID = deviceInfo.ID.Pointer()
	deviceConfig.SampleRate = 44100
	deviceConfig.Alsa.NoMMap = 1

	e := &Engine{
		commands: newRingBuffer[EngineCommand](64),
		tracksIn: newRingBuffer[[]EngineTrack](4),
		status:   newRingBuffer[EngineStatus](64),
		metrics:  metrics,
	}

	state := &playbackState{}
	var currentTracks []EngineTrack

	// scratch and silenceFrame are allocated once, here on the control
	// thread, and reused on every callback invocation: the device's
	// channel count and sample format are fixed for the engine's
	// lifetime (set above), so nothing in the mix loop below ever needs
	// to allocate on the audio thread.
	outputChannels := int(deviceConfig.Playback.Channels)
	outputFormat := deviceConfig.Playback.Format
	scratch := make([]float32, outputChannels)
	silenceFrame := make([]byte, outputChannels*sampleFormatSize(outputFormat))
	writeFrame(silenceFrame, make([]float32, outputChannels), outputFormat)

	deviceCallbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, _ []byte, frameCount uint32) {
			start := time.Now()
			defer func() {
				e.metrics.recordCallbackDuration(time.Since(start))
			}()

			if newTracks, ok := e.tracksIn.drainLatest(); ok {
				currentTracks = newTracks
			}

			for {
				cmd, ok := e.commands.pop()
				if !ok {
					break
				}
				switch cmd.Kind {
				case CommandPlay:
					state.playing = true
				case CommandPause:
					state.playing = false
				case CommandSeek:
					state.position = cmd.Sample
				}
			}

			if !e.status.push(EngineStatus{Position: state.position}) {
				e.metrics.recordQueueDrop("status")
			}

			mixCallback(pOutput, frameCount, outputChannels, outputFormat, currentTracks, state, scratch, silenceFrame)
		},
		Stop: func() {},
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		_ = ctx.Uninit()
		return nil, errors.New(err).
			Component("daw").
			Category(errors.CategoryAudioDevice).
			Context("device_name", deviceInfo.Name()).
			Context("operation", "init_device").
			Build()
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		return nil, errors.New(err).
			Component("daw").
			Category(errors.CategoryAudioDevice).
			Context("operation", "start_device").
			Build()
	}

	e.ctx = ctx
	e.device = device
	e.sampleRate = device.SampleRate()
	e.outputChannels = int(deviceConfig.Playback.Channels)
	e.outputFormat = device.PlaybackFormat()

	return e, nil
}

// SampleRate returns the device's actual sample rate.
func (e *Engine) SampleRate() uint32 { return e.sampleRate }

// OutputChannels returns the device's actual output channel count.
func (e *Engine) OutputChannels() int { return e.outputChannels }

// PushCommand enqueues a command for the next callback; it drops the
// command and records a metric if the queue is full.
func (e *Engine) PushCommand(cmd EngineCommand) {
	if !e.commands.push(cmd) {
		e.metrics.recordQueueDrop("commands")
	}
}

// PushTracks publishes a fresh track snapshot for hot-swap on the next
// callback. Unlike commands/status, tracks retries briefly on a full
// queue: losing an edited snapshot is worse than one extra attempt.
func (e *Engine) PushTracks(tracks []EngineTrack) {
	for i := 0; i < 8; i++ {
		if e.tracksIn.push(tracks) {
			return
		}
	}
	e.metrics.recordQueueDrop("tracks")
}

// PollStatus drains the status queue, returning the most recent position
// if any arrived.
func (e *Engine) PollStatus() (EngineStatus, bool) {
	return e.status.drainLatest()
}

// Close stops the stream and releases the device/context.
func (e *Engine) Close() error {
	if e.device != nil {
		_ = e.device.Stop()
		e.device.Uninit()
	}
	if e.ctx != nil {
		return e.ctx.Uninit()
	}
	return nil
}

// mixCallback renders frameCount output frames into pOutput, encoded per
// outputFormat, from tracks starting at state.position, then advances
// state.position by the number of frames written while playing.
// scratch and silenceFrame are reusable buffers owned by the caller,
// sized once on the control thread, so this function never allocates.
func mixCallback(pOutput []byte, frameCount uint32, outputChannels int, format malgo.FormatType, tracks []EngineTrack, state *playbackState, scratch []float32, silenceFrame []byte) {
	if outputChannels <= 0 {
		return
	}
	bytesPerSample := sampleFormatSize(format)
	frameBytes := outputChannels * bytesPerSample

	anySolo := false
	for _, t := range tracks {
		if t.Solo {
			anySolo = true
			break
		}
	}

	for frame := 0; frame < int(frameCount); frame++ {
		off := frame * frameBytes
		if off+frameBytes > len(pOutput) {
			break
		}

		if !state.playing {
			writeSilence(pOutput[off:off+frameBytes], silenceFrame)
			continue
		}

		for i := range scratch {
			scratch[i] = 0
		}
		mixFrameInto(scratch, tracks, state.position, anySolo)
		if !writeFrame(pOutput[off:off+frameBytes], scratch, format) {
			state.degraded = true
			writeSilence(pOutput[off:off+frameBytes], silenceFrame)
		}
		state.position++
	}
}

// mixFrameInto accumulates the contribution of every enabled (and, if any
// track solos, every soloed) track's active clip at position into out,
// applying per-track volume, channel coercion, and the linear pan law for
// 2-channel output.
func mixFrameInto(out []float32, tracks []EngineTrack, position uint64, anySolo bool) {
	outputChannels := len(out)
	panLaw := outputChannels == 2

	for _, track := range tracks {
		if !track.Enabled {
			continue
		}
		if anySolo && !track.Solo {
			continue
		}

		for _, clip := range track.Clips {
			if position < clip.StartSample || position >= clip.EndSample {
				continue
			}
			frameIndex := position - clip.StartSample
			clipChannels := int(clip.Audio.Channels())
			if clipChannels == 0 {
				continue
			}
			samples := clip.Audio.Samples()
			base := int(frameIndex) * clipChannels
			if base+clipChannels > len(samples) {
				continue
			}

			for ch := 0; ch < outputChannels; ch++ {
				clipCh := ch % clipChannels
				value := samples[base+clipCh] * track.Volume
				if panLaw {
					if ch == 0 {
						value *= (1 - track.Pan) / 2
					} else {
						value *= (1 + track.Pan) / 2
					}
				}
				out[ch] += value
			}
		}
	}
}

func sampleFormatSize(format malgo.FormatType) int {
	switch format {
	case malgo.FormatF32:
		return 4
	case malgo.FormatS32:
		return 4
	case malgo.FormatS16:
		return 2
	case malgo.FormatU8:
		return 1
	default:
		return 4
	}
}

// writeFrame encodes one frame of samples into dst per format, returning
// false (and leaving dst unmodified) for formats the engine can't encode -
// the caller then falls back to silence and raises the degraded flag.
func writeFrame(dst []byte, samples []float32, format malgo.FormatType) bool {
	switch format {
	case malgo.FormatF32:
		for i, s := range samples {
			binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(clampUnit(s)))
		}
		return true
	case malgo.FormatS16:
		for i, s := range samples {
			v := int16(clampUnit(s) * 32767)
			binary.LittleEndian.PutUint16(dst[i*2:], uint16(v))
		}
		return true
	case malgo.FormatS32:
		for i, s := range samples {
			v := int32(clampUnit(s) * 2147483647)
			binary.LittleEndian.PutUint32(dst[i*4:], uint32(v))
		}
		return true
	case malgo.FormatU8:
		for i, s := range samples {
			v := uint8((clampUnit(s)*0.5 + 0.5) * 255)
			dst[i] = v
		}
		return true
	default:
		return false
	}
}

// writeSilence copies a precomputed silent frame into dst without
// allocating, so it is safe to call from the audio callback.
func writeSilence(dst []byte, silenceFrame []byte) {
	copy(dst, silenceFrame)
}

func clampUnit(s float32) float32 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
