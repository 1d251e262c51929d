// conf/consts.go hard coded constants
package conf

const (
	// DefaultSampleRate is the device sample rate assumed when no audio
	// device has been opened yet (offline render defaults to it too).
	DefaultSampleRate = 44100
	// DefaultChannels is the default output channel count for render/playback.
	DefaultChannels = 2
	// DefaultTempo is the tempo assumed for a brand new session.
	DefaultTempo = 120.0

	ConfigFileName = "config"
	ConfigFileType = "yaml"
)
