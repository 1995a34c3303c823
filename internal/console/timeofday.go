package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/procentric/catena/internal/logging"
	"github.com/procentric/catena/internal/system"
)

const (
	timeFocusInput = iota
	timeFocusNTP
	timeFocusSubmit
	timeFocusBack
	timeFocusReboot
)

// TimeScreen configures the system clock and NTP synchronization. The NTP
// checkbox is applied on submit; manual time entry only takes effect while
// NTP is disabled.
type TimeScreen struct {
	mgr      *system.Manager
	embedded bool

	current    string
	ntpEnabled bool
	input      textinput.Model
	response   string
	isError    bool
	focus      int
	width      int
}

// NewTimeScreen creates the time screen. The embedded flag selects wizard
// mode.
func NewTimeScreen(mgr *system.Manager, embedded bool) *TimeScreen {
	input := textinput.New()
	input.Placeholder = "YYYY-MM-DD HH:MM:SS"
	input.CharLimit = 19
	input.Width = 40
	input.Focus()

	s := &TimeScreen{
		mgr:      mgr,
		embedded: embedded,
		input:    input,
	}
	s.current = mgr.CurrentTime()
	s.ntpEnabled = mgr.NTPEnabled()
	s.input.SetValue(s.current)
	return s
}

// ActionName implements menu.Action.
func (s *TimeScreen) ActionName() string { return "Configure System Time" }

// Start refreshes the clock readings before each presentation.
func (s *TimeScreen) Start() error {
	s.current = s.mgr.CurrentTime()
	s.ntpEnabled = s.mgr.NTPEnabled()
	s.response = ""
	s.isError = false
	return nil
}

// Init implements tea.Model.
func (s *TimeScreen) Init() tea.Cmd { return textinput.Blink }

func (s *TimeScreen) maxFocus() int {
	if s.embedded {
		return timeFocusSubmit
	}
	return timeFocusReboot
}

// Update implements tea.Model.
func (s *TimeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			s.setFocus(s.focus + 1)
			return s, nil
		case "shift+tab", "up":
			s.setFocus(s.focus - 1)
			return s, nil
		case " ":
			if s.focus == timeFocusNTP {
				s.toggleNTP()
				return s, nil
			}
		case "enter":
			return s, s.activate()
		}
	}

	if s.focus == timeFocusInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *TimeScreen) setFocus(focus int) {
	max := s.maxFocus()
	if focus < 0 {
		focus = max
	}
	if focus > max {
		focus = 0
	}
	s.focus = focus
	if s.focus == timeFocusInput {
		s.input.Focus()
	} else {
		s.input.Blur()
	}
}

// toggleNTP flips the pending NTP state. Nothing is applied until submit.
func (s *TimeScreen) toggleNTP() {
	s.ntpEnabled = !s.ntpEnabled
	state := "disabled"
	if s.ntpEnabled {
		state = "enabled"
	}
	s.respond(fmt.Sprintf("NTP status set to %s (pending Submit).", state))
}

func (s *TimeScreen) activate() tea.Cmd {
	switch s.focus {
	case timeFocusNTP:
		s.toggleNTP()
		return nil
	case timeFocusInput, timeFocusSubmit:
		s.submit()
		return nil
	case timeFocusBack:
		s.response = ""
		s.isError = false
		return requestClose
	case timeFocusReboot:
		if err := s.mgr.Reboot(); err != nil {
			logging.Error("Reboot failed", zap.Error(err))
			s.respondError(fmt.Sprintf("Failed to reboot system: %v", err))
		}
		return nil
	}
	return nil
}

// submit applies the NTP state, then the manual time if NTP is disabled. The
// input clears only on a successful time change so a failed entry can be
// retried without retyping.
func (s *TimeScreen) submit() {
	s.response = ""
	s.isError = false

	if err := s.mgr.SetNTP(s.ntpEnabled); err != nil {
		logging.Error("Failed to set NTP state", zap.Bool("enabled", s.ntpEnabled), zap.Error(err))
		s.respondError(fmt.Sprintf("Error updating system settings: %v", err))
		return
	}

	if s.ntpEnabled {
		s.respond("NTP synchronization enabled applied.")
		return
	}

	value := strings.TrimSpace(s.input.Value())
	if err := system.ValidateTime(value); err != nil {
		s.respondError("Failed to set time: Invalid format. Use YYYY-MM-DD HH:MM:SS.")
		return
	}

	if err := s.mgr.SetTime(value); err != nil {
		logging.Error("Failed to set time", zap.String("time", value), zap.Error(err))
		s.respondError(fmt.Sprintf("Error updating system settings: %v", err))
		return
	}

	logging.Info("System time updated", zap.String("time", value))
	s.current = value
	s.input.SetValue("")
	if s.embedded {
		s.respond(fmt.Sprintf("Time successfully changed to %s. Click Next to proceed.", value))
	} else {
		s.respond(fmt.Sprintf("Time successfully changed to %s. Please reboot.", value))
	}
}

func (s *TimeScreen) respond(msg string) {
	s.response = msg
	s.isError = false
}

func (s *TimeScreen) respondError(msg string) {
	s.response = msg
	s.isError = true
}

func (s *TimeScreen) checkbox() string {
	mark := "[ ]"
	if s.ntpEnabled {
		mark = "[x]"
	}
	label := mark + " Enable NTP"
	if s.focus == timeFocusNTP {
		return FocusedButtonStyle.Render(label)
	}
	return ButtonStyle.Render(label)
}

// View implements tea.Model.
func (s *TimeScreen) View() string {
	var b strings.Builder

	b.WriteString("Current time: " + ValueStyle.Render(s.current))
	b.WriteString("\n\n")
	b.WriteString("Enter new time (format: YYYY-MM-DD HH:MM:SS):\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")
	b.WriteString(s.checkbox())
	b.WriteString("\n\n")

	if s.response != "" {
		if s.isError {
			b.WriteString(ErrorStyle.Render(s.response))
		} else {
			b.WriteString(ResponseStyle.Render(s.response))
		}
		b.WriteString("\n\n")
	}

	buttons := []string{RenderButton("Submit", s.focus == timeFocusSubmit)}
	if !s.embedded {
		buttons = append(buttons,
			RenderButton("Back", s.focus == timeFocusBack),
			RenderButton("Reboot", s.focus == timeFocusReboot),
		)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))

	if s.embedded {
		return b.String()
	}
	return RenderScreenBox("Configure Time", b.String(), s.width)
}
