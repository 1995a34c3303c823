package system

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Sentinel values displayed when the system cannot report a reading. These
// are shown verbatim in the UI.
const (
	FailedTime     = "Failed to Determine Time"
	FailedTimezone = "Failed to Determine Timezone"
)

// TimeLayout is the wall-clock format accepted by timedatectl set-time.
const TimeLayout = "2006-01-02 15:04:05"

// Manager exposes the system settings the console can read and change. All
// writes delegate to the systemd utilities; Manager never modifies system
// state itself.
type Manager struct {
	runner Runner
	sudo   bool

	// HostnameSource returns the current hostname. Defaults to os.Hostname;
	// overridable in tests.
	HostnameSource func() (string, error)
}

// NewManager creates a Manager backed by runner. When useSudo is set,
// privileged commands are prefixed with sudo, matching the appliance's
// operator account setup.
func NewManager(runner Runner, useSudo bool) *Manager {
	return &Manager{
		runner:         runner,
		sudo:           useSudo,
		HostnameSource: os.Hostname,
	}
}

// privileged prepends sudo when configured.
func (m *Manager) privileged(argv ...string) []string {
	if m.sudo {
		return append([]string{"sudo"}, argv...)
	}
	return argv
}

// Hostname returns the current hostname, or an empty string when the OS
// cannot report one.
func (m *Manager) Hostname() string {
	name, err := m.HostnameSource()
	if err != nil {
		return ""
	}
	return name
}

// SetHostname sets the system hostname via hostnamectl.
func (m *Manager) SetHostname(name string) error {
	return m.runner.Run(m.privileged("hostnamectl", "set-hostname", name)...)
}

// NTPEnabled reports whether NTP synchronization is active. Command failure
// or unexpected output is treated as disabled.
func (m *Manager) NTPEnabled() bool {
	out, err := m.runner.Output("timedatectl", "show", "--property=NTP")
	if err != nil {
		return false
	}
	value, ok := strings.CutPrefix(strings.TrimSpace(out), "NTP=")
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(value), "yes")
}

// SetNTP enables or disables NTP synchronization.
func (m *Manager) SetNTP(enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	return m.runner.Run(m.privileged("timedatectl", "set-ntp", value)...)
}

// CurrentTime returns the local time as reported by timedatectl status,
// or the FailedTime sentinel when it cannot be determined.
func (m *Manager) CurrentTime() string {
	out, err := m.runner.Output("timedatectl", "status")
	if err != nil {
		return FailedTime
	}
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "Local time") {
			continue
		}
		if _, value, ok := strings.Cut(strings.TrimSpace(line), ": "); ok {
			return strings.TrimSpace(value)
		}
	}
	return FailedTime
}

// ValidateTime checks that value is a well-formed "YYYY-MM-DD HH:MM:SS"
// wall-clock timestamp.
func ValidateTime(value string) error {
	if _, err := time.Parse(TimeLayout, value); err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	return nil
}

// SetTime sets the system clock. The value must satisfy ValidateTime.
func (m *Manager) SetTime(value string) error {
	if err := ValidateTime(value); err != nil {
		return err
	}
	return m.runner.Run(m.privileged("timedatectl", "set-time", value)...)
}

// Timezone returns the current timezone, or the FailedTimezone sentinel when
// it cannot be determined.
func (m *Manager) Timezone() string {
	out, err := m.runner.Output("timedatectl", "show", "--property=Timezone")
	if err != nil {
		return FailedTimezone
	}
	value := strings.TrimSpace(out)
	if idx := strings.LastIndex(value, "="); idx >= 0 {
		value = value[idx+1:]
	}
	if value == "" {
		return FailedTimezone
	}
	return value
}

// SetTimezone sets the system timezone to the named zone.
func (m *Manager) SetTimezone(zone string) error {
	return m.runner.Run(m.privileged("timedatectl", "set-timezone", zone)...)
}

// Reboot reboots the appliance. On success the process is torn down by the
// OS; an error return means the reboot did not start.
func (m *Manager) Reboot() error {
	return m.runner.Run(m.privileged("reboot")...)
}

// Shutdown powers the appliance off.
func (m *Manager) Shutdown() error {
	return m.runner.Run(m.privileged("shutdown")...)
}

// SystemInfo returns the output of the appliance's catena-info utility.
func (m *Manager) SystemInfo() (string, error) {
	return m.runner.Output("catena-info")
}

// NetworkToolArgv returns the argv for the interactive network configuration
// tool. The caller is responsible for terminal handover while it runs.
func (m *Manager) NetworkToolArgv() []string {
	return m.privileged("/usr/bin/nmtui")
}
