package daw

import (
	"encoding/hex"
	"runtime"
	"strings"

	"github.com/gen2brain/malgo"
	"github.com/korbindeman/goaw/internal/errors"
)

// AudioDeviceInfo describes one enumerated output device. ID is the
// hex-decoded device identifier when it decodes to ASCII, the raw hex
// string otherwise.
type AudioDeviceInfo struct {
	Index int
	Name  string
	ID    string

	isDefault bool
}

func backendsForPlatform() ([]malgo.Backend, error) {
	switch runtime.GOOS {
	case "linux":
		return []malgo.Backend{malgo.BackendAlsa, malgo.BackendPulseaudio}, nil
	case "windows":
		return []malgo.Backend{malgo.BackendWasapi}, nil
	case "darwin":
		return []malgo.Backend{malgo.BackendCoreaudio}, nil
	default:
		return nil, errors.Newf("unsupported operating system: %s", runtime.GOOS).
			Component("daw").
			Category(errors.CategoryAudioDevice).
			Context("os", runtime.GOOS).
			Build()
	}
}

// EnumerateOutputDevices lists the system's playback devices.
func EnumerateOutputDevices() ([]AudioDeviceInfo, error) {
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
	defer func() { _ = ctx.Uninit() }()

	infos, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, errors.New(err).
			Component("daw").
			Category(errors.CategoryAudioDevice).
			Context("operation", "enumerate_devices").
			Build()
	}

	devices := make([]AudioDeviceInfo, 0, len(infos))
	for i := range infos {
		decodedID, err := hexToASCII(infos[i].ID.String())
		if err != nil {
			decodedID = infos[i].ID.String()
		}
		devices = append(devices, AudioDeviceInfo{
			Index:     i,
			Name:      infos[i].Name(),
			ID:        decodedID,
			isDefault: infos[i].IsDefault == 1,
		})
	}
	return devices, nil
}

// DefaultOutputDevice returns the system's default playback device, or the
// first enumerated device when none is marked as default.
func DefaultOutputDevice() (*AudioDeviceInfo, error) {
	devices, err := EnumerateOutputDevices()
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, errors.Newf("no playback devices found").
			Component("daw").
			Category(errors.CategoryAudioDevice).
			Build()
	}
	for i := range devices {
		if devices[i].isDefault {
			return &devices[i], nil
		}
	}
	return &devices[0], nil
}

// selectDevice finds a device matching name among infos, or the default /
// first device when name is "" or "default".
func selectDevice(infos []malgo.DeviceInfo, name string) (*malgo.DeviceInfo, error) {
	if name == "" || name == "default" {
		for i := range infos {
			if infos[i].IsDefault == 1 {
				return &infos[i], nil
			}
		}
		if len(infos) > 0 {
			return &infos[0], nil
		}
	}

	for i := range infos {
		if infos[i].Name() == name {
			return &infos[i], nil
		}
	}
	for i := range infos {
		if strings.Contains(infos[i].Name(), name) {
			return &infos[i], nil
		}
	}

	return nil, errors.Newf("no playback device matching %q", name).
		Component("daw").
		Category(errors.CategoryAudioDevice).
		Context("device_name", name).
		Context("available_devices", len(infos)).
		Build()
}

func hexToASCII(hexStr string) (string, error) {
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
