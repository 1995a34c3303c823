package console

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/procentric/catena/internal/logging"
	"github.com/procentric/catena/internal/menu"
	"github.com/procentric/catena/internal/system"
)

// Options selects how the console starts up.
type Options struct {
	// InitialSetup marks the first boot of an unconfigured appliance. It
	// changes the wizard completion screen to offer Reboot only.
	InitialSetup bool
	// StartWizard presents the setup wizard immediately on launch.
	StartWizard bool
}

// Model is the top level console model. It hosts the menu navigator as the
// base layer and at most one overlay screen above it. While an overlay is
// presented it receives all input; the navigator is frozen underneath.
type Model struct {
	nav     *Navigator
	overlay menu.Screen
	mgr     *system.Manager
	opts    Options

	width  int
	height int
}

// New creates the console model over the given menu tree.
func New(mgr *system.Manager, root menu.Spec, opts Options) (*Model, error) {
	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("invalid menu tree: %w", err)
	}
	return &Model{
		nav:  NewNavigator(root),
		mgr:  mgr,
		opts: opts,
	}, nil
}

// DefaultMenu builds the standard appliance menu tree.
func DefaultMenu(mgr *system.Manager, initialSetup bool) menu.Spec {
	return menu.Spec{
		Name: "Catena",
		Children: []menu.Spec{
			{
				Name: "Networks",
				Children: []menu.Spec{
					{Name: "Network Interfaces", Action: NewNetworkScreen(mgr, false)},
					{Name: "Edit Network Settings", Action: menu.Exec{
						Name: "Edit Network Settings",
						Argv: mgr.NetworkToolArgv(),
					}},
				},
			},
			{
				Name: "Utilities",
				Children: []menu.Spec{
					{Name: "Configure System Host", Action: NewHostnameScreen(mgr, false)},
					{Name: "Configure System Timezone", Action: NewTimezoneScreen(mgr, false)},
					{Name: "Configure System Time", Action: NewTimeScreen(mgr, false)},
					{Name: "System Information", Action: NewSystemInfoScreen(mgr)},
					{Name: "Reboot", Action: menu.Callable{Name: "Reboot", Run: mgr.Reboot}},
					{Name: "Shutdown", Action: menu.Callable{Name: "Shutdown", Run: mgr.Shutdown}},
					{Name: "Setup Wizard", Action: NewWizard(mgr, initialSetup)},
				},
			},
		},
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.opts.StartWizard {
		w := NewWizard(m.mgr, m.opts.InitialSetup)
		return func() tea.Msg { return presentMsg{screen: w} }
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.nav.SetSize(msg.Width, msg.Height)
		if m.overlay != nil {
			m.overlay.Update(msg)
		}
		return m, nil

	case presentMsg:
		return m, m.present(msg.screen)

	case closeMsg:
		if w, ok := m.overlay.(*Wizard); ok && w.ConsumeClose() {
			return m, nil
		}
		m.overlay = nil
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.overlay == nil {
				return m, tea.Quit
			}
		}
	}

	if m.overlay != nil {
		_, cmd := m.overlay.Update(msg)
		return m, cmd
	}
	_, cmd := m.nav.Update(msg)
	return m, cmd
}

// present installs a screen as the overlay. A present request while an
// overlay is already shown is rejected; screens are flat, never stacked.
func (m *Model) present(screen menu.Screen) tea.Cmd {
	if m.overlay != nil {
		logging.Warn("Overlay present rejected, another overlay is active",
			zap.String("requested", screen.ActionName()),
			zap.String("active", m.overlay.ActionName()))
		return nil
	}
	// A failing Start aborts the presentation; the menu stays usable.
	if s, ok := screen.(menu.Starter); ok {
		if err := s.Start(); err != nil {
			logging.Error("Screen start failed, presentation aborted",
				zap.String("screen", screen.ActionName()), zap.Error(err))
			return nil
		}
	}
	m.overlay = screen
	if m.width > 0 {
		screen.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
	logging.Info("Overlay presented", zap.String("screen", screen.ActionName()))
	return screen.Init()
}

// View implements tea.Model.
func (m *Model) View() string {
	var content, footer string
	if m.overlay != nil {
		content = m.overlay.View()
		footer = "ctrl+c quit"
	} else {
		content = m.nav.View()
		footer = m.nav.HelpText()
	}
	return RenderFrame(content, footer, m.width, m.height)
}

// Run starts the console on the controlling terminal and blocks until it
// exits.
func Run(mgr *system.Manager, root menu.Spec, opts Options) error {
	model, err := New(mgr, root, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console exited with error: %w", err)
	}
	return nil
}
