package daw

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/korbindeman/goaw/internal/errors"
	"github.com/korbindeman/goaw/internal/logging"
)

// PlaybackState is the session-level transport state: unlike the engine
// callback's playing bool, the session distinguishes Stopped (paused and
// rewound to zero) from Paused.
type PlaybackState int

const (
	Stopped PlaybackState = iota
	Playing
	Paused
)

func (s PlaybackState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// IsPlaying reports whether the state is Playing.
func (s PlaybackState) IsPlaying() bool { return s == Playing }

type resampleCacheKey struct {
	source uuid.UUID
	rate   uint32
}

// Session is the top-level façade over the timeline data model and the
// realtime engine: it owns tick-space state, converts it to the engine's
// sample-space on every publish, and caches per-buffer resamples so that
// rebuilding snapshots on every edit stays cheap.
type Session struct {
	mu sync.Mutex

	name          string
	timeCtx       TimeContext
	tracks        []*Track
	currentTick   uint64
	playbackState PlaybackState

	metronomeEnabled bool
	metronomeVolume  float32

	engine       *Engine
	resampleOnce map[resampleCacheKey]AudioBuffer

	log *slogAdapter
}

// slogAdapter narrows the logging package's *slog.Logger down to the
// handful of calls this file makes, so tests can construct a Session
// without wiring real logging.
type slogAdapter struct {
	info func(msg string, args ...any)
	warn func(msg string, args ...any)
}

func newSlogAdapter() *slogAdapter {
	l := logging.ForService("daw-session")
	if l == nil {
		nop := func(string, ...any) {}
		return &slogAdapter{info: nop, warn: nop}
	}
	return &slogAdapter{info: l.Info, warn: l.Warn}
}

// NewSession builds a Session around tracks at the given tempo and time
// signature, and starts the realtime engine on deviceName (empty string
// selects the system default).
func NewSession(name string, tracks []*Track, tempo float64, timeSig TimeSignature, deviceName string) (*Session, error) {
	engine, err := StartEngine(deviceName, GetMetrics())
	if err != nil {
		return nil, err
	}

	s := &Session{
		name:            name,
		timeCtx:         NewTimeContext(tempo, timeSig),
		tracks:          tracks,
		playbackState:   Stopped,
		metronomeVolume: 1.0,
		engine:          engine,
		resampleOnce:    make(map[resampleCacheKey]AudioBuffer),
		log:             newSlogAdapter(),
	}

	if err := s.publishTracks(); err != nil {
		_ = engine.Close()
		return nil, err
	}
	return s, nil
}

// Play transitions to Playing and signals the engine.
func (s *Session) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.PushCommand(EngineCommand{Kind: CommandPlay})
	s.playbackState = Playing
}

// Pause transitions to Paused without rewinding.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.PushCommand(EngineCommand{Kind: CommandPause})
	s.playbackState = Paused
}

// Stop pauses and rewinds to tick zero.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.PushCommand(EngineCommand{Kind: CommandPause})
	s.seekLocked(0)
	s.playbackState = Stopped
}

// Seek moves the transport to tick without changing playback state.
func (s *Session) Seek(tick uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seekLocked(tick)
}

func (s *Session) seekLocked(tick uint64) {
	sample := s.timeCtx.TicksToSamples(tick, s.engine.SampleRate())
	s.engine.PushCommand(EngineCommand{Kind: CommandSeek, Sample: sample})
	s.currentTick = tick
}

// Poll drains the engine's status queue and updates the cached tick
// position, returning the new tick if one arrived.
func (s *Session) Poll() (uint64, bool) {
	status, ok := s.engine.PollStatus()
	if !ok {
		return 0, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentTick = s.timeCtx.SamplesToTicks(status.Position, s.engine.SampleRate())
	return s.currentTick, true
}

// SessionTick is the transport-position event a frontend's poll loop emits
// to its listeners: the current tick plus the playback state it was
// observed in.
type SessionTick struct {
	Tick  uint64
	State PlaybackState
}

// PollEvent wraps Poll for event-driven frontends, pairing the new tick
// with the playback state it was observed in.
func (s *Session) PollEvent() (SessionTick, bool) {
	tick, ok := s.Poll()
	if !ok {
		return SessionTick{}, false
	}
	return SessionTick{Tick: tick, State: s.PlaybackState()}, true
}

// CurrentTick returns the last known timeline position.
func (s *Session) CurrentTick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTick
}

// PlaybackState returns the transport's current state.
func (s *Session) PlaybackState() PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playbackState
}

// IsPlaying reports whether the transport is playing.
func (s *Session) IsPlaying() bool {
	return s.PlaybackState() == Playing
}

// Name returns the session's display name.
func (s *Session) Name() string { return s.name }

// SetMetronome enables or disables the metronome. Click generation is a
// frontend concern; the session only carries the flag and volume.
func (s *Session) SetMetronome(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metronomeEnabled = enabled
}

// MetronomeEnabled reports whether the metronome is enabled.
func (s *Session) MetronomeEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metronomeEnabled
}

// SetMetronomeVolume sets the metronome gain, clamped to [0, 1].
func (s *Session) SetMetronomeVolume(volume float32) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metronomeVolume = volume
}

// MetronomeVolume returns the metronome gain.
func (s *Session) MetronomeVolume() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metronomeVolume
}

// Tempo returns the session's tempo in BPM.
func (s *Session) Tempo() float64 { return s.timeCtx.Tempo }

// TimeSignature returns the session's time signature.
func (s *Session) TimeSignature() TimeSignature { return s.timeCtx.TimeSignature }

// Tracks returns the session's tracks.
func (s *Session) Tracks() []*Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracks
}

// SetTracks replaces the track list and republishes an engine-side
// snapshot, resampling any newly-seen clip audio to the device rate.
func (s *Session) SetTracks(tracks []*Track) error {
	s.mu.Lock()
	s.tracks = tracks
	s.mu.Unlock()
	return s.publishTracks()
}

// SetTempo updates the tempo used for tick<->sample conversion. Existing
// clip audio offsets were computed against the old tempo and are left
// untouched. The new tempo applies to later seeks, polls and published
// snapshots; the snapshot already held by the engine is not republished.
// Engine positions are in samples, so audio is not moved.
func (s *Session) SetTempo(tempo float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeCtx.Tempo = tempo
}

// Close stops playback and releases the underlying audio device.
func (s *Session) Close() error {
	return s.engine.Close()
}

// publishTracks converts the current tick-space tracks to sample-space
// EngineTracks at the device's sample rate, resampling clip audio through
// the cache keyed by (AudioBuffer.ID(), targetRate), and pushes the
// snapshot to the engine.
func (s *Session) publishTracks() error {
	s.mu.Lock()
	tracks := s.tracks
	timeCtx := s.timeCtx
	deviceRate := s.engine.SampleRate()
	s.mu.Unlock()
	engineTracks := make([]EngineTrack, 0, len(tracks))
	for _, track := range tracks {
		engineClips := make([]EngineClip, 0, len(track.Clips))
		for _, clip := range track.Clips {
			resampled, err := s.resample(clip.Audio, deviceRate)
			if err != nil {
				if s.log != nil {
					s.log.warn("dropping clip: resample failed", "clip", clip.Name, "target_rate", deviceRate, "error", err)
				}
				continue
			}
			startSample := timeCtx.TicksToSamples(clip.StartTick, deviceRate)
			endSample := timeCtx.TicksToSamples(clip.EndTick, deviceRate)
			engineClips = append(engineClips, EngineClip{
				StartSample: startSample,
				EndSample:   endSample,
				Audio:       resampled,
			})
		}
		engineTracks = append(engineTracks, EngineTrack{
			Clips:   engineClips,
			Volume:  track.Volume,
			Pan:     track.Pan,
			Enabled: track.Enabled,
			Solo:    track.Solo,
		})
	}

	s.engine.PushTracks(engineTracks)
	return nil
}

// resample looks up (or populates) the resample cache for buf at
// targetRate, recording a hit/miss metric either way.
func (s *Session) resample(buf AudioBuffer, targetRate uint32) (AudioBuffer, error) {
	key := resampleCacheKey{source: buf.ID(), rate: targetRate}

	s.mu.Lock()
	cached, ok := s.resampleOnce[key]
	s.mu.Unlock()
	if ok {
		GetMetrics().recordResampleCache(true)
		return cached, nil
	}

	resampled, err := Resample(buf, targetRate)
	if err != nil {
		return AudioBuffer{}, errors.New(err).
			Component("daw").
			Category(errors.CategoryResample).
			Context("target_rate", targetRate).
			Build()
	}

	s.mu.Lock()
	s.resampleOnce[key] = resampled
	s.mu.Unlock()
	GetMetrics().recordResampleCache(false)
	return resampled, nil
}

// RenderToFile mixes every track down to sampleRate/channels and writes it
// to path as a WAV file, independent of the realtime engine and of the
// current playback state.
func (s *Session) RenderToFile(path string, sampleRate uint32, channels uint16) error {
	s.mu.Lock()
	tracks := s.tracks
	tempo := s.timeCtx.Tempo
	s.mu.Unlock()

	start := time.Now()
	buf, err := RenderTimeline(tracks, tempo, sampleRate, channels)
	if err != nil {
		return err
	}
	GetMetrics().recordRender(time.Since(start), buf.Len())

	if err := WriteWAV(buf, path); err != nil {
		return err
	}
	if s.log != nil {
		s.log.info("rendered timeline to file", "path", path, "frames", buf.Frames())
	}
	return nil
}
