package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/procentric/catena/internal/logging"
	"github.com/procentric/catena/internal/system"
)

// InfoScreen shows scrollable output of a read-only system report. The
// report is refreshed each time the screen is presented.
type InfoScreen struct {
	mgr   *system.Manager
	title string
	fetch func() (string, error)

	vp      viewport.Model
	content string
	loadErr error
	ready   bool
	width   int
	height  int
}

// NewSystemInfoScreen creates the screen backed by the system report tool.
func NewSystemInfoScreen(mgr *system.Manager) *InfoScreen {
	return &InfoScreen{
		mgr:   mgr,
		title: "System Information",
		fetch: mgr.SystemInfo,
	}
}

// ActionName implements menu.Action.
func (s *InfoScreen) ActionName() string { return s.title }

// Start refreshes the report before each presentation.
func (s *InfoScreen) Start() error {
	out, err := s.fetch()
	s.content = out
	s.loadErr = err
	if err != nil {
		logging.Error("System report failed", zap.Error(err))
	}
	if s.ready {
		s.vp.SetContent(s.body())
		s.vp.GotoTop()
	}
	return nil
}

func (s *InfoScreen) body() string {
	if s.loadErr != nil {
		return ErrorStyle.Render(fmt.Sprintf("Failed to read system information: %v", s.loadErr))
	}
	if strings.TrimSpace(s.content) == "" {
		return SubtleStyle.Render("No system information available.")
	}
	return s.content
}

// Init implements tea.Model.
func (s *InfoScreen) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (s *InfoScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		// Leave room for the box chrome and the footer hint.
		w := msg.Width - 8
		h := msg.Height - 10
		if w < 20 {
			w = 20
		}
		if h < 3 {
			h = 3
		}
		if !s.ready {
			s.vp = viewport.New(w, h)
			s.ready = true
		} else {
			s.vp.Width = w
			s.vp.Height = h
		}
		s.vp.SetContent(s.body())
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", "backspace":
			return s, requestClose
		}
	}

	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

// View implements tea.Model.
func (s *InfoScreen) View() string {
	if !s.ready {
		return RenderScreenBox(s.title, s.body(), s.width)
	}
	content := s.vp.View() + "\n\n" + HelpStyle.Render("up/down scroll, enter back")
	return RenderScreenBox(s.title, content, s.width)
}
