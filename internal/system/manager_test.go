package system

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// fakeRunner records every invocation and returns canned results.
type fakeRunner struct {
	runCalls    [][]string
	outputCalls [][]string

	runErr  error
	output  string
	outErr  error
	outputs map[string]string
}

func (f *fakeRunner) Run(argv ...string) error {
	f.runCalls = append(f.runCalls, argv)
	return f.runErr
}

func (f *fakeRunner) Output(argv ...string) (string, error) {
	f.outputCalls = append(f.outputCalls, argv)
	if f.outputs != nil {
		if out, ok := f.outputs[fmt.Sprint(argv)]; ok {
			return out, nil
		}
	}
	return f.output, f.outErr
}

func (f *fakeRunner) lastRun() []string {
	if len(f.runCalls) == 0 {
		return nil
	}
	return f.runCalls[len(f.runCalls)-1]
}

func TestPrivilegedCommandArgv(t *testing.T) {
	tests := []struct {
		name string
		sudo bool
		call func(m *Manager) error
		want []string
	}{
		{
			name: "set hostname with sudo",
			sudo: true,
			call: func(m *Manager) error { return m.SetHostname("appliance-01") },
			want: []string{"sudo", "hostnamectl", "set-hostname", "appliance-01"},
		},
		{
			name: "set hostname without sudo",
			sudo: false,
			call: func(m *Manager) error { return m.SetHostname("appliance-01") },
			want: []string{"hostnamectl", "set-hostname", "appliance-01"},
		},
		{
			name: "enable ntp",
			sudo: true,
			call: func(m *Manager) error { return m.SetNTP(true) },
			want: []string{"sudo", "timedatectl", "set-ntp", "true"},
		},
		{
			name: "disable ntp",
			sudo: true,
			call: func(m *Manager) error { return m.SetNTP(false) },
			want: []string{"sudo", "timedatectl", "set-ntp", "false"},
		},
		{
			name: "set time",
			sudo: true,
			call: func(m *Manager) error { return m.SetTime("2026-08-30 12:34:56") },
			want: []string{"sudo", "timedatectl", "set-time", "2026-08-30 12:34:56"},
		},
		{
			name: "set timezone",
			sudo: true,
			call: func(m *Manager) error { return m.SetTimezone("Europe/London") },
			want: []string{"sudo", "timedatectl", "set-timezone", "Europe/London"},
		},
		{
			name: "reboot",
			sudo: true,
			call: func(m *Manager) error { return m.Reboot() },
			want: []string{"sudo", "reboot"},
		},
		{
			name: "shutdown",
			sudo: true,
			call: func(m *Manager) error { return m.Shutdown() },
			want: []string{"sudo", "shutdown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			m := NewManager(runner, tt.sudo)
			if err := tt.call(m); err != nil {
				t.Fatalf("call error = %v", err)
			}
			if got := runner.lastRun(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("argv = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHostname(t *testing.T) {
	m := NewManager(&fakeRunner{}, false)
	m.HostnameSource = func() (string, error) { return "appliance-01", nil }
	if got := m.Hostname(); got != "appliance-01" {
		t.Errorf("Hostname() = %q, want %q", got, "appliance-01")
	}

	m.HostnameSource = func() (string, error) { return "", errors.New("no hostname") }
	if got := m.Hostname(); got != "" {
		t.Errorf("Hostname() = %q, want empty on error", got)
	}
}

func TestNTPEnabled(t *testing.T) {
	tests := []struct {
		name   string
		output string
		outErr error
		want   bool
	}{
		{"enabled", "NTP=yes\n", nil, true},
		{"enabled mixed case", "NTP=Yes\n", nil, true},
		{"disabled", "NTP=no\n", nil, false},
		{"unexpected output", "something else", nil, false},
		{"command failure", "", errors.New("exit 1"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{output: tt.output, outErr: tt.outErr}
			m := NewManager(runner, false)
			if got := m.NTPEnabled(); got != tt.want {
				t.Errorf("NTPEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCurrentTime(t *testing.T) {
	statusOutput := `               Local time: Sat 2026-08-30 12:34:56 BST
           Universal time: Sat 2026-08-30 11:34:56 UTC
                 RTC time: Sat 2026-08-30 11:34:56
                Time zone: Europe/London (BST, +0100)
System clock synchronized: yes
              NTP service: active
`

	tests := []struct {
		name   string
		output string
		outErr error
		want   string
	}{
		{"full status", statusOutput, nil, "Sat 2026-08-30 12:34:56 BST"},
		{"missing local time line", "Time zone: UTC\n", nil, FailedTime},
		{"command failure", "", errors.New("exit 1"), FailedTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{output: tt.output, outErr: tt.outErr}
			m := NewManager(runner, false)
			if got := m.CurrentTime(); got != tt.want {
				t.Errorf("CurrentTime() = %q, want %q", got, tt.want)
			}

			want := []string{"timedatectl", "status"}
			if got := runner.outputCalls[0]; !reflect.DeepEqual(got, want) {
				t.Errorf("argv = %v, want %v", got, want)
			}
		})
	}
}

func TestTimezone(t *testing.T) {
	tests := []struct {
		name   string
		output string
		outErr error
		want   string
	}{
		{"named zone", "Timezone=Europe/London\n", nil, "Europe/London"},
		{"empty value", "Timezone=\n", nil, FailedTimezone},
		{"command failure", "", errors.New("exit 1"), FailedTimezone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{output: tt.output, outErr: tt.outErr}
			m := NewManager(runner, false)
			if got := m.Timezone(); got != tt.want {
				t.Errorf("Timezone() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateTime(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"2026-08-30 12:34:56", false},
		{"2026-02-29 00:00:00", true},
		{"2026-08-30", true},
		{"12:34:56", true},
		{"not a time", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := ValidateTime(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTime(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestSetTimeRejectsInvalidValue(t *testing.T) {
	runner := &fakeRunner{}
	m := NewManager(runner, true)

	if err := m.SetTime("bogus"); err == nil {
		t.Fatal("SetTime(bogus) = nil, want error")
	}
	if len(runner.runCalls) != 0 {
		t.Errorf("SetTime with invalid value ran %v, want no command", runner.runCalls)
	}
}

func TestNetworkToolArgv(t *testing.T) {
	m := NewManager(&fakeRunner{}, true)
	want := []string{"sudo", "/usr/bin/nmtui"}
	if got := m.NetworkToolArgv(); !reflect.DeepEqual(got, want) {
		t.Errorf("NetworkToolArgv() = %v, want %v", got, want)
	}

	m = NewManager(&fakeRunner{}, false)
	want = []string{"/usr/bin/nmtui"}
	if got := m.NetworkToolArgv(); !reflect.DeepEqual(got, want) {
		t.Errorf("NetworkToolArgv() = %v, want %v", got, want)
	}
}

func TestSystemInfo(t *testing.T) {
	runner := &fakeRunner{output: "model: catena-x1\n"}
	m := NewManager(runner, true)

	out, err := m.SystemInfo()
	if err != nil {
		t.Fatalf("SystemInfo() error = %v", err)
	}
	if out != "model: catena-x1\n" {
		t.Errorf("SystemInfo() = %q, want passthrough output", out)
	}

	// Read-only report, no sudo prefix.
	want := []string{"catena-info"}
	if got := runner.outputCalls[0]; !reflect.DeepEqual(got, want) {
		t.Errorf("argv = %v, want %v", got, want)
	}
}
