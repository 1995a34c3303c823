package console

import (
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
	netFocusConfigure = iota
	netFocusClose
	netFocusReboot
)

// NetworkScreen configures network interfaces by handing the terminal to the
// system network tool. As the final wizard step its Done control closes the
// screen, which the wizard treats as completion.
type NetworkScreen struct {
	mgr      *system.Manager
	embedded bool

	response string
	isError  bool
	focus    int
	width    int
}

// NewNetworkScreen creates the network screen. The embedded flag selects
// wizard mode.
func NewNetworkScreen(mgr *system.Manager, embedded bool) *NetworkScreen {
	return &NetworkScreen{mgr: mgr, embedded: embedded}
}

// ActionName implements menu.Action.
func (s *NetworkScreen) ActionName() string { return "Configure Network Interfaces" }

// Init implements tea.Model.
func (s *NetworkScreen) Init() tea.Cmd { return nil }

func (s *NetworkScreen) maxFocus() int {
	if s.embedded {
		return netFocusClose
	}
	return netFocusReboot
}

// Update implements tea.Model.
func (s *NetworkScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return s, nil

	case execDoneMsg:
		if msg.err != nil {
			logging.Error("Network tool failed", zap.String("name", msg.name), zap.Error(msg.err))
			s.response = fmt.Sprintf("Network tool exited with error: %v", msg.err)
			s.isError = true
		} else {
			s.response = ""
			s.isError = false
		}
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

func (s *NetworkScreen) setFocus(focus int) {
	max := s.maxFocus()
	if focus < 0 {
		focus = max
	}
	if focus > max {
		focus = 0
	}
	s.focus = focus
}

func (s *NetworkScreen) activate() tea.Cmd {
	switch s.focus {
	case netFocusConfigure:
		argv := s.mgr.NetworkToolArgv()
		c := exec.Command(argv[0], argv[1:]...)
		return tea.ExecProcess(c, func(err error) tea.Msg {
			return execDoneMsg{name: "network tool", err: err}
		})
	case netFocusClose:
		s.response = ""
		s.isError = false
		return requestClose
	case netFocusReboot:
		if err := s.mgr.Reboot(); err != nil {
			logging.Error("Reboot failed", zap.Error(err))
			s.response = fmt.Sprintf("Failed to reboot system: %v", err)
			s.isError = true
		}
	}
	return nil
}

// View implements tea.Model.
func (s *NetworkScreen) View() string {
	var b strings.Builder

	b.WriteString("Configure IP addresses, routes and DNS for the system interfaces.")
	b.WriteString("\n\n")

	if s.response != "" {
		if s.isError {
			b.WriteString(ErrorStyle.Render(s.response))
		} else {
			b.WriteString(ResponseStyle.Render(s.response))
		}
		b.WriteString("\n\n")
	}

	closeLabel := "Back"
	if s.embedded {
		closeLabel = "Done"
	}
	buttons := []string{
		RenderButton("Configure Interfaces", s.focus == netFocusConfigure),
		RenderButton(closeLabel, s.focus == netFocusClose),
	}
	if !s.embedded {
		buttons = append(buttons, RenderButton("Reboot", s.focus == netFocusReboot))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))

	if s.embedded {
		return b.String()
	}
	return RenderScreenBox("Configure Network", b.String(), s.width)
}
