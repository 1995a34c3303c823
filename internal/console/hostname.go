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

// Control indices shared by the form screens. Screens hide the trailing
// controls in embedded mode.
const (
	hostnameFocusInput = iota
	hostnameFocusSubmit
	hostnameFocusBack
	hostnameFocusReboot
)

// HostnameScreen configures the system hostname. In standalone mode it
// carries Back and Reboot controls; embedded in the wizard those are
// suppressed and the wizard supplies navigation.
type HostnameScreen struct {
	mgr      *system.Manager
	embedded bool

	current  string
	input    textinput.Model
	response string
	isError  bool
	focus    int
	width    int
}

// NewHostnameScreen creates the hostname screen. The embedded flag selects
// wizard mode.
func NewHostnameScreen(mgr *system.Manager, embedded bool) *HostnameScreen {
	input := textinput.New()
	input.Placeholder = "hostname"
	input.CharLimit = 64
	input.Width = 40
	input.Focus()

	s := &HostnameScreen{
		mgr:      mgr,
		embedded: embedded,
		input:    input,
	}
	s.current = mgr.Hostname()
	s.input.SetValue(s.current)
	return s
}

// ActionName implements menu.Action.
func (s *HostnameScreen) ActionName() string { return "Configure System Host" }

// Start refreshes the current hostname before each presentation.
func (s *HostnameScreen) Start() error {
	s.current = s.mgr.Hostname()
	s.response = ""
	s.isError = false
	return nil
}

// Init implements tea.Model.
func (s *HostnameScreen) Init() tea.Cmd { return textinput.Blink }

func (s *HostnameScreen) maxFocus() int {
	if s.embedded {
		return hostnameFocusSubmit
	}
	return hostnameFocusReboot
}

// Update implements tea.Model.
func (s *HostnameScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case "enter":
			return s, s.activate()
		}
	}

	if s.focus == hostnameFocusInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *HostnameScreen) setFocus(focus int) {
	max := s.maxFocus()
	if focus < 0 {
		focus = max
	}
	if focus > max {
		focus = 0
	}
	s.focus = focus
	if s.focus == hostnameFocusInput {
		s.input.Focus()
	} else {
		s.input.Blur()
	}
}

func (s *HostnameScreen) activate() tea.Cmd {
	switch s.focus {
	case hostnameFocusInput, hostnameFocusSubmit:
		s.submit()
		return nil
	case hostnameFocusBack:
		s.response = ""
		s.isError = false
		return requestClose
	case hostnameFocusReboot:
		if err := s.mgr.Reboot(); err != nil {
			logging.Error("Reboot failed", zap.Error(err))
			s.respondError(fmt.Sprintf("Failed to reboot system: %v", err))
		}
		return nil
	}
	return nil
}

// submit applies the entered hostname. The input clears on every outcome so
// a stale name is never resubmitted by accident.
func (s *HostnameScreen) submit() {
	newName := strings.TrimSpace(s.input.Value())
	s.input.SetValue("")
	s.response = ""
	s.isError = false

	if newName == "" {
		s.respondError("Please provide a valid hostname.")
		return
	}
	if newName == s.current {
		s.respondError("The submitted hostname is same as current. Submit different hostname.")
		return
	}

	if err := s.mgr.SetHostname(newName); err != nil {
		logging.Error("Failed to set hostname", zap.String("hostname", newName), zap.Error(err))
		s.respondError(fmt.Sprintf("Failed to change hostname: %v", err))
		return
	}

	logging.Info("Hostname changed", zap.String("hostname", newName))
	s.current = newName
	if s.embedded {
		s.respond(fmt.Sprintf("Hostname is changed to: %s. Click Next to proceed.", newName))
	} else {
		s.respond(fmt.Sprintf("Hostname is changed to: %s. Please reboot.", newName))
	}
}

func (s *HostnameScreen) respond(msg string) {
	s.response = msg
	s.isError = false
}

func (s *HostnameScreen) respondError(msg string) {
	s.response = msg
	s.isError = true
}

// View implements tea.Model.
func (s *HostnameScreen) View() string {
	var b strings.Builder

	b.WriteString("Current hostname: " + ValueStyle.Render(s.current))
	b.WriteString("\n\n")
	b.WriteString("Enter new hostname:\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	if s.response != "" {
		if s.isError {
			b.WriteString(ErrorStyle.Render(s.response))
		} else {
			b.WriteString(ResponseStyle.Render(s.response))
		}
		b.WriteString("\n\n")
	}

	buttons := []string{RenderButton("Submit", s.focus == hostnameFocusSubmit)}
	if !s.embedded {
		buttons = append(buttons,
			RenderButton("Back", s.focus == hostnameFocusBack),
			RenderButton("Reboot", s.focus == hostnameFocusReboot),
		)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))

	if s.embedded {
		return b.String()
	}
	return RenderScreenBox("Configure Hostname", b.String(), s.width)
}
