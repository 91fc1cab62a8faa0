package core

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const (
	DefaultServerUrl = "rujackbox.vercel.app"
	SettingsFileName = "settings.yaml"
)

// Settings are the remembered command line choices.
type Settings struct {
	ServerUrl string `yaml:"server_url"`
	// SteamPath is the root used for explicit discovery.
	SteamPath string `yaml:"steam_path,omitempty"`
	// Discovery is "auto", "steam" or empty for SteamPath.
	Discovery string `yaml:"discovery,omitempty"`
	Workers   int    `yaml:"workers,omitempty"`
}

func DefaultSettings() *Settings {
	return &Settings{
		ServerUrl: DefaultServerUrl,
		Workers:   DefaultWorkers,
	}
}

// LocateMode turns the remembered discovery choice into a LocateMode. ok is
// false when nothing usable was remembered.
func (s *Settings) LocateMode() (mode LocateMode, ok bool) {
	switch s.Discovery {
	case "auto":
		return AutoMode(), true
	case "steam":
		return SteamMode(), true
	}

	if s.SteamPath != "" {
		return ExplicitMode(s.SteamPath), true
	}

	return LocateMode{}, false
}

func getSettingsDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, APP_NAME), nil
}

func GetSettingsPath() (string, error) {
	dir, err := getSettingsDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, SettingsFileName), nil
}

func ReadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, oops.Wrapf(err, "failed to parse %s", path)
	}

	return settings, nil
}

func WriteSettings(path string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func GetCurrentSettingsOrDefault() *Settings {
	path, err := GetSettingsPath()
	if err != nil {
		return DefaultSettings()
	}

	settings, err := ReadSettings(path)
	if err != nil {
		if !os.IsNotExist(err) {
			Log.WithError(err).Warn("Ignoring unreadable settings")
		}
		return DefaultSettings()
	}

	return settings
}

func CommitSettings(settings *Settings) error {
	path, err := GetSettingsPath()
	if err != nil {
		return err
	}

	return WriteSettings(path, settings)
}
