// conf/config.go
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Settings holds the full configuration for the engine and CLI, bound to
// viper from a YAML file, flags, and environment variables (GOAW_ prefix).
type Settings struct {
	Debug bool

	Daw struct {
		DeviceName    string  // output device name; "" or "default" selects the system default
		SampleRate    int     // render sample rate in Hz, 0 = DefaultSampleRate; not read by the playback engine
		Channels      int     // render channel count, 0 = DefaultChannels; not read by the playback engine
		Tempo         float64 // session tempo in BPM
		TimeSigNum    uint32
		TimeSigDen    uint32
		SamplesRoot   string // root directory searched for sample files
		Metronome     bool
		MetronomeGain float32
	}

	Output struct {
		File struct {
			Path string // destination WAV path for render
		}
	}

	Log struct {
		Path  string
		Level string
	}
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
	once             sync.Once
)

// Load reads configuration from file, environment, and previously bound
// flags into a Settings struct.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	applyDefaults(settings)
	settingsInstance = settings
	return settings, nil
}

func initViper() error {
	viper.SetConfigName(ConfigFileName)
	viper.SetConfigType(ConfigFileType)
	viper.SetEnvPrefix("GOAW")
	viper.AutomaticEnv()

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file on disk is not fatal; defaults + env + flags apply.
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}
	return nil
}

// applyDefaults fills in zero-valued fields that must never be zero for the
// engine to start (tempo / time signature / samples root / metronome gain).
func applyDefaults(s *Settings) {
	if s.Daw.Tempo <= 0 {
		s.Daw.Tempo = DefaultTempo
	}
	if s.Daw.TimeSigNum == 0 {
		s.Daw.TimeSigNum = 4
	}
	if s.Daw.TimeSigDen == 0 {
		s.Daw.TimeSigDen = 4
	}
	if s.Daw.SamplesRoot == "" {
		s.Daw.SamplesRoot = "samples"
	}
	if s.Daw.MetronomeGain <= 0 {
		s.Daw.MetronomeGain = 0.5
	}
}

// GetSettings returns the most recently loaded settings instance, or nil if
// Load has not been called yet.
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// EnsureConfigDir creates the first default config path if it does not exist
// and returns it. No default file is written; the engine runs fine without a
// config.yaml on disk.
func EnsureConfigDir() (string, error) {
	paths, err := GetDefaultConfigPaths()
	if err != nil || len(paths) == 0 {
		return "", err
	}
	dir := paths[0]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}
	return dir, nil
}

func init() {
	once.Do(func() {
		viper.SetDefault("daw.sampleRate", DefaultSampleRate)
		viper.SetDefault("daw.channels", DefaultChannels)
	})
}

// ResolveOutputPath joins a relative render destination against the current
// working directory.
func ResolveOutputPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	return filepath.Join(wd, path)
}
