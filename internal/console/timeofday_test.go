package console

import (
	"errors"
	"strings"
	"testing"
)

func TestTimeToggleNTPIsPending(t *testing.T) {
	runner, mgr := newTestRunnerManager(t)
	s := NewTimeScreen(mgr, false)

	if s.ntpEnabled {
		t.Fatal("ntpEnabled = true from scripted NTP=no")
	}

	s.toggleNTP()
	if !s.ntpEnabled {
		t.Error("toggle did not enable NTP")
	}
	if !strings.Contains(s.response, "pending Submit") {
		t.Errorf("response = %q, want pending notice", s.response)
	}
	if runner.ranCommand("timedatectl set-ntp true") {
		t.Error("toggle applied NTP before submit")
	}
}

func TestTimeSubmitOutcomes(t *testing.T) {
	tests := []struct {
		name         string
		embedded     bool
		ntp          bool
		input        string
		ntpErr       error
		setTimeErr   error
		wantResponse string
		wantErr      bool
		wantInput    string
	}{
		{
			name:         "ntp apply failure keeps input",
			ntp:          true,
			input:        "2026-08-30 12:00:00",
			ntpErr:       errors.New("exit 1"),
			wantResponse: "Error updating system settings:",
			wantErr:      true,
			wantInput:    "2026-08-30 12:00:00",
		},
		{
			name:         "ntp enabled skips manual time",
			ntp:          true,
			input:        "not even a time",
			wantResponse: "NTP synchronization enabled applied.",
			wantInput:    "not even a time",
		},
		{
			name:         "invalid format keeps input",
			input:        "30/08/2026",
			wantResponse: "Failed to set time: Invalid format. Use YYYY-MM-DD HH:MM:SS.",
			wantErr:      true,
			wantInput:    "30/08/2026",
		},
		{
			name:         "set-time failure keeps input",
			input:        "2026-08-30 13:00:00",
			setTimeErr:   errors.New("exit 1"),
			wantResponse: "Error updating system settings:",
			wantErr:      true,
			wantInput:    "2026-08-30 13:00:00",
		},
		{
			name:         "success standalone clears input",
			input:        "2026-08-30 13:00:00",
			wantResponse: "Time successfully changed to 2026-08-30 13:00:00. Please reboot.",
			wantInput:    "",
		},
		{
			name:         "success embedded clears input",
			embedded:     true,
			input:        "2026-08-30 13:00:00",
			wantResponse: "Time successfully changed to 2026-08-30 13:00:00. Click Next to proceed.",
			wantInput:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, mgr := newTestRunnerManager(t)
			if tt.ntpErr != nil {
				runner.runErrs["timedatectl set-ntp true"] = tt.ntpErr
				runner.runErrs["timedatectl set-ntp false"] = tt.ntpErr
			}
			if tt.setTimeErr != nil {
				runner.runErrs["timedatectl set-time "+tt.input] = tt.setTimeErr
			}

			s := NewTimeScreen(mgr, tt.embedded)
			s.ntpEnabled = tt.ntp
			s.input.SetValue(tt.input)
			s.submit()

			if !strings.Contains(s.response, tt.wantResponse) {
				t.Errorf("response = %q, want containing %q", s.response, tt.wantResponse)
			}
			if s.isError != tt.wantErr {
				t.Errorf("isError = %v, want %v", s.isError, tt.wantErr)
			}
			if s.input.Value() != tt.wantInput {
				t.Errorf("input = %q after submit, want %q", s.input.Value(), tt.wantInput)
			}
		})
	}
}

func TestTimeSubmitAppliesNTPFirst(t *testing.T) {
	runner, mgr := newTestRunnerManager(t)
	s := NewTimeScreen(mgr, false)

	s.input.SetValue("2026-08-30 13:00:00")
	s.submit()

	if len(runner.runCalls) < 2 {
		t.Fatalf("runCalls = %v, want set-ntp then set-time", runner.runCalls)
	}
	if got := strings.Join(runner.runCalls[0], " "); got != "timedatectl set-ntp false" {
		t.Errorf("first command = %q, want timedatectl set-ntp false", got)
	}
	if got := strings.Join(runner.runCalls[1], " "); got != "timedatectl set-time 2026-08-30 13:00:00" {
		t.Errorf("second command = %q, want timedatectl set-time", got)
	}
}

func TestTimeSuccessUpdatesCurrent(t *testing.T) {
	_, mgr := newTestRunnerManager(t)
	s := NewTimeScreen(mgr, false)

	s.input.SetValue("2026-08-30 13:00:00")
	s.submit()

	if s.current != "2026-08-30 13:00:00" {
		t.Errorf("current = %q, want submitted value", s.current)
	}
}

func TestTimeStartRefreshes(t *testing.T) {
	runner, mgr := newTestRunnerManager(t)
	s := NewTimeScreen(mgr, false)
	s.response = "stale"
	s.ntpEnabled = true

	runner.outputs["timedatectl show --property=NTP"] = "NTP=no\n"
	runner.outputs["timedatectl status"] = "Local time: Sun 2026-08-31 09:00:00 BST\n"
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if s.ntpEnabled {
		t.Error("Start() did not refresh NTP state")
	}
	if s.current != "Sun 2026-08-31 09:00:00 BST" {
		t.Errorf("current = %q, want refreshed reading", s.current)
	}
	if s.response != "" {
		t.Error("Start() should clear the previous response")
	}
}

func TestTimeViewShowsCheckbox(t *testing.T) {
	_, mgr := newTestRunnerManager(t)
	s := NewTimeScreen(mgr, false)

	if !strings.Contains(s.View(), "[ ] Enable NTP") {
		t.Error("View() missing unchecked NTP checkbox")
	}
	s.ntpEnabled = true
	if !strings.Contains(s.View(), "[x] Enable NTP") {
		t.Error("View() missing checked NTP checkbox")
	}
}
