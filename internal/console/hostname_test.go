package console

import (
	"errors"
	"strings"
	"testing"
)

func TestHostnameSubmitOutcomes(t *testing.T) {
	tests := []struct {
		name         string
		embedded     bool
		input        string
		setErr       error
		wantResponse string
		wantErr      bool
		wantApplied  bool
	}{
		{
			name:         "empty input",
			input:        "",
			wantResponse: "Please provide a valid hostname.",
			wantErr:      true,
		},
		{
			name:         "whitespace only",
			input:        "   ",
			wantResponse: "Please provide a valid hostname.",
			wantErr:      true,
		},
		{
			name:         "same as current",
			input:        "catena-01",
			wantResponse: "The submitted hostname is same as current. Submit different hostname.",
			wantErr:      true,
		},
		{
			name:         "command failure",
			input:        "catena-02",
			setErr:       errors.New("exit 1"),
			wantResponse: "Failed to change hostname:",
			wantErr:      true,
			wantApplied:  true,
		},
		{
			name:         "success standalone",
			input:        "catena-02",
			wantResponse: "Hostname is changed to: catena-02. Please reboot.",
			wantApplied:  true,
		},
		{
			name:         "success embedded",
			embedded:     true,
			input:        "catena-02",
			wantResponse: "Hostname is changed to: catena-02. Click Next to proceed.",
			wantApplied:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, mgr := newTestRunnerManager(t)
			if tt.setErr != nil {
				runner.runErrs["hostnamectl set-hostname "+strings.TrimSpace(tt.input)] = tt.setErr
			}

			s := NewHostnameScreen(mgr, tt.embedded)
			s.input.SetValue(tt.input)
			s.submit()

			if !strings.Contains(s.response, tt.wantResponse) {
				t.Errorf("response = %q, want containing %q", s.response, tt.wantResponse)
			}
			if s.isError != tt.wantErr {
				t.Errorf("isError = %v, want %v", s.isError, tt.wantErr)
			}
			if got := runner.ranCommand("hostnamectl set-hostname " + strings.TrimSpace(tt.input)); got != tt.wantApplied {
				t.Errorf("hostnamectl invoked = %v, want %v", got, tt.wantApplied)
			}
			// The input clears on every outcome.
			if s.input.Value() != "" {
				t.Errorf("input = %q after submit, want empty", s.input.Value())
			}
		})
	}
}

func TestHostnameSuccessUpdatesCurrent(t *testing.T) {
	_, mgr := newTestRunnerManager(t)
	s := NewHostnameScreen(mgr, false)

	s.input.SetValue("catena-02")
	s.submit()

	if s.current != "catena-02" {
		t.Errorf("current = %q, want catena-02", s.current)
	}

	// Resubmitting the new name is now rejected as unchanged.
	s.input.SetValue("catena-02")
	s.submit()
	if !s.isError {
		t.Error("resubmitting the applied name should be rejected")
	}
}

func TestHostnameStartRefreshes(t *testing.T) {
	_, mgr := newTestRunnerManager(t)
	s := NewHostnameScreen(mgr, false)
	s.response = "stale"
	s.isError = true

	mgr.HostnameSource = func() (string, error) { return "renamed", nil }
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if s.current != "renamed" {
		t.Errorf("current = %q, want renamed", s.current)
	}
	if s.response != "" || s.isError {
		t.Error("Start() should clear the previous response")
	}
}

func TestHostnameFocusCycle(t *testing.T) {
	_, mgr := newTestRunnerManager(t)

	s := NewHostnameScreen(mgr, false)
	for i := 0; i <= hostnameFocusReboot; i++ {
		if s.focus != i {
			t.Fatalf("focus = %d, want %d", s.focus, i)
		}
		s.setFocus(s.focus + 1)
	}
	if s.focus != hostnameFocusInput {
		t.Errorf("focus = %d after full cycle, want wrap to input", s.focus)
	}

	// Embedded mode hides Back and Reboot.
	e := NewHostnameScreen(mgr, true)
	e.setFocus(hostnameFocusSubmit + 1)
	if e.focus != hostnameFocusInput {
		t.Errorf("embedded focus = %d, want wrap after Submit", e.focus)
	}
}

func TestHostnameBackRequestsClose(t *testing.T) {
	_, mgr := newTestRunnerManager(t)
	s := NewHostnameScreen(mgr, false)
	s.setFocus(hostnameFocusBack)

	cmd := s.activate()
	if cmd == nil {
		t.Fatal("Back returned nil cmd")
	}
	if _, ok := cmd().(closeMsg); !ok {
		t.Errorf("Back cmd() = %T, want closeMsg", cmd())
	}
}

func TestHostnameViewModes(t *testing.T) {
	_, mgr := newTestRunnerManager(t)

	standalone := NewHostnameScreen(mgr, false).View()
	for _, label := range []string{"Submit", "Back", "Reboot"} {
		if !strings.Contains(standalone, label) {
			t.Errorf("standalone View() missing %q", label)
		}
	}

	embedded := NewHostnameScreen(mgr, true).View()
	for _, label := range []string{"Back", "Reboot"} {
		if strings.Contains(embedded, label) {
			t.Errorf("embedded View() shows %q", label)
		}
	}
}
