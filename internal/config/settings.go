package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "catena"
	configFile = "console.yaml"
)

var (
	// Global settings instance (loaded lazily)
	globalSettings     *Settings
	globalSettingsOnce sync.Once

	// Mutex for thread-safe file operations
	fileMutex sync.Mutex
)

// Settings is the on-disk configuration for the console. Every field has a
// working default; a missing or unreadable file never prevents startup.
type Settings struct {
	Version int `yaml:"version"`

	// Log controls the file logger. Environment variables take precedence.
	Log LogSettings `yaml:"log,omitempty"`

	// UseSudo prefixes privileged system commands (hostnamectl set-hostname,
	// timedatectl set-*, reboot, shutdown, nmtui) with sudo.
	UseSudo bool `yaml:"use_sudo"`

	// NetworkPorts configures the first-boot port naming check.
	NetworkPorts NetworkPortsSettings `yaml:"network_ports,omitempty"`
}

// LogSettings selects log level and destination file.
type LogSettings struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error; empty = silent
	File  string `yaml:"file,omitempty"`  // empty = default location
}

// NetworkPortsSettings locates the port naming source and the naming
// convention the appliance expects.
type NetworkPortsSettings struct {
	// File is the key/value source listing the appliance's network ports.
	File string `yaml:"file,omitempty"`
	// ExpectedName is the substring a correctly named interface contains.
	ExpectedName string `yaml:"expected_name,omitempty"`
}

// DefaultPortsFile is the well-known location of the port naming source.
const DefaultPortsFile = "/etc/procentric/network_ports"

// DefaultExpectedName is the predictable-interface-name convention the
// appliance images ship with.
const DefaultExpectedName = "eno"

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		UseSudo: true,
		NetworkPorts: NetworkPortsSettings{
			File:         DefaultPortsFile,
			ExpectedName: DefaultExpectedName,
		},
	}
}

// GetConfigDir returns the OS-appropriate configuration directory for the
// application. This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/catena or $HOME/.config/catena
//   - macOS: $HOME/.config/catena (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\catena
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	default:
		// Linux (the appliance target), macOS and other Unix-like systems:
		// XDG_CONFIG_HOME or $HOME/.config
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// ensureConfigDir ensures the configuration directory exists.
func ensureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// LoadSettings loads the console settings from disk. If the file doesn't
// exist, returns default settings. Thread-safe - multiple calls return the
// same instance.
func LoadSettings() (*Settings, error) {
	var err error
	globalSettingsOnce.Do(func() {
		globalSettings, err = loadSettingsFromDisk()
	})
	if globalSettings == nil {
		// A previous load failed; fall back to defaults rather than carrying
		// the error into every caller.
		globalSettings = NewSettings()
	}
	return globalSettings, err
}

// loadSettingsFromDisk performs the actual file loading.
func loadSettingsFromDisk() (*Settings, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return NewSettings(), fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return NewSettings(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return NewSettings(), fmt.Errorf("failed to read config file: %w", err)
	}

	settings := NewSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return NewSettings(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if settings.Version != 1 {
		return NewSettings(), fmt.Errorf("unsupported config version: %d (expected 1)", settings.Version)
	}

	applyDefaults(settings)
	return settings, nil
}

// applyDefaults fills zero-valued fields that must never be empty.
func applyDefaults(s *Settings) {
	if s.NetworkPorts.File == "" {
		s.NetworkPorts.File = DefaultPortsFile
	}
	if s.NetworkPorts.ExpectedName == "" {
		s.NetworkPorts.ExpectedName = DefaultExpectedName
	}
}

// Save saves the settings to disk. Performs an atomic write to prevent
// corruption on crash.
func (s *Settings) Save() error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := ensureConfigDir(); err != nil {
		return fmt.Errorf("failed to ensure config directory exists: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Catena Console Configuration File
#
# Location: ` + configPath + `

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}
