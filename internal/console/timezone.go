package console

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/procentric/catena/internal/logging"
	"github.com/procentric/catena/internal/system"
)

const (
	tzFocusSelect = iota
	tzFocusBack
	tzFocusReboot
)

// TimezoneScreen configures the system timezone. Selection is delegated to
// the interactive tzselect utility, which needs the terminal for itself: the
// event loop suspends the screen driver around it and restores it whether or
// not the subprocess succeeds.
type TimezoneScreen struct {
	mgr      *system.Manager
	embedded bool

	current  string
	response string
	isError  bool
	focus    int
	width    int
}

// NewTimezoneScreen creates the timezone screen. The embedded flag selects
// wizard mode.
func NewTimezoneScreen(mgr *system.Manager, embedded bool) *TimezoneScreen {
	s := &TimezoneScreen{
		mgr:      mgr,
		embedded: embedded,
	}
	s.current = mgr.Timezone()
	return s
}

// ActionName implements menu.Action.
func (s *TimezoneScreen) ActionName() string { return "Configure System Timezone" }

// Start refreshes the current timezone before each presentation.
func (s *TimezoneScreen) Start() error {
	s.current = s.mgr.Timezone()
	s.response = ""
	s.isError = false
	return nil
}

// Init implements tea.Model.
func (s *TimezoneScreen) Init() tea.Cmd { return nil }

func (s *TimezoneScreen) maxFocus() int {
	if s.embedded {
		return tzFocusSelect
	}
	return tzFocusReboot
}

// Update implements tea.Model.
func (s *TimezoneScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return s, nil

	case tzPickedMsg:
		s.applySelection(msg)
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			s.setFocus(s.focus + 1)
		case "shift+tab", "up":
			s.setFocus(s.focus - 1)
		case "enter":
			return s, s.activate()
		}
	}
	return s, nil
}

func (s *TimezoneScreen) setFocus(focus int) {
	max := s.maxFocus()
	if focus < 0 {
		focus = max
	}
	if focus > max {
		focus = 0
	}
	s.focus = focus
}

func (s *TimezoneScreen) activate() tea.Cmd {
	switch s.focus {
	case tzFocusSelect:
		return s.runTzselect()
	case tzFocusBack:
		s.response = ""
		s.isError = false
		return requestClose
	case tzFocusReboot:
		if err := s.mgr.Reboot(); err != nil {
			logging.Error("Reboot failed", zap.Error(err))
			s.respondError(fmt.Sprintf("Failed to reboot system: %v", err))
		}
		return nil
	}
	return nil
}

// runTzselect hands the terminal to tzselect. The utility prompts on stderr
// and prints the chosen zone as the last line of stdout, so stdout is
// captured while stdin and stderr stay attached to the terminal.
func (s *TimezoneScreen) runTzselect() tea.Cmd {
	var out bytes.Buffer
	c := exec.Command("tzselect")
	c.Stdout = &out
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return tzPickedMsg{zone: lastLine(out.String()), err: err}
	})
}

// lastLine returns the final non-empty line of output.
func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}

// applySelection handles the tzselect outcome and applies the chosen zone.
func (s *TimezoneScreen) applySelection(msg tzPickedMsg) {
	s.response = ""
	s.isError = false

	if msg.err != nil {
		logging.Error("tzselect failed", zap.Error(msg.err))
		s.respondError(fmt.Sprintf("Error setting timezone: %v", msg.err))
		return
	}
	if msg.zone == "" {
		s.respondError("Error setting timezone: no timezone selected")
		return
	}

	if err := s.mgr.SetTimezone(msg.zone); err != nil {
		logging.Error("Failed to set timezone", zap.String("zone", msg.zone), zap.Error(err))
		s.respondError(fmt.Sprintf("Error setting timezone: %v", err))
		return
	}

	logging.Info("Timezone changed", zap.String("zone", msg.zone))
	s.current = s.mgr.Timezone()
	if s.embedded {
		s.respond(fmt.Sprintf("Timezone is set to %s. Please click Next to proceed.", s.current))
	} else {
		s.respond(fmt.Sprintf("Timezone is set to %s. Please reboot to apply changes.", s.current))
	}
}

func (s *TimezoneScreen) respond(msg string) {
	s.response = msg
	s.isError = false
}

func (s *TimezoneScreen) respondError(msg string) {
	s.response = msg
	s.isError = true
}

// View implements tea.Model.
func (s *TimezoneScreen) View() string {
	var b strings.Builder

	b.WriteString("Current timezone: " + ValueStyle.Render(s.current))
	b.WriteString("\n\n")

	if s.response != "" {
		if s.isError {
			b.WriteString(ErrorStyle.Render(s.response))
		} else {
			b.WriteString(ResponseStyle.Render(s.response))
		}
		b.WriteString("\n\n")
	}

	buttons := []string{RenderButton("Set Timezone", s.focus == tzFocusSelect)}
	if !s.embedded {
		buttons = append(buttons,
			RenderButton("Back", s.focus == tzFocusBack),
			RenderButton("Reboot", s.focus == tzFocusReboot),
		)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))

	if s.embedded {
		return b.String()
	}
	return RenderScreenBox("Configure Timezone", b.String(), s.width)
}
