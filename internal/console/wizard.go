package console

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/procentric/catena/internal/logging"
	"github.com/procentric/catena/internal/menu"
	"github.com/procentric/catena/internal/system"
)

// wizardStep pairs a step label with its embedded screen.
type wizardStep struct {
	label  string
	screen menu.Screen
}

// Wizard walks the operator through initial appliance setup: hostname,
// timezone, time and network, in that order. Progress is forward only.
// Closing the network step completes the wizard and shows the completion
// screen; steps cannot be revisited without restarting the wizard.
type Wizard struct {
	mgr          *system.Manager
	initialSetup bool

	steps     []wizardStep
	idx       int
	completed bool
	closing   bool

	focusNext bool
	cursor    int
	rebootErr string

	width  int
	height int
}

// NewWizard creates the setup wizard. In initial-setup mode the completion
// screen offers only Reboot; otherwise it also offers Home.
func NewWizard(mgr *system.Manager, initialSetup bool) *Wizard {
	w := &Wizard{mgr: mgr, initialSetup: initialSetup}
	w.steps = buildSteps(mgr)
	return w
}

func buildSteps(mgr *system.Manager) []wizardStep {
	return []wizardStep{
		{label: "Hostname", screen: NewHostnameScreen(mgr, true)},
		{label: "Timezone", screen: NewTimezoneScreen(mgr, true)},
		{label: "Time", screen: NewTimeScreen(mgr, true)},
		{label: "Network", screen: NewNetworkScreen(mgr, true)},
	}
}

// ActionName implements menu.Action.
func (w *Wizard) ActionName() string { return "Setup Wizard" }

// Start prepares the current step for presentation.
func (w *Wizard) Start() error {
	return w.startStep()
}

func (w *Wizard) startStep() error {
	if s, ok := w.steps[w.idx].screen.(menu.Starter); ok {
		if err := s.Start(); err != nil {
			logging.Error("Wizard step start failed",
				zap.String("step", w.steps[w.idx].label), zap.Error(err))
			return err
		}
	}
	return nil
}

// ConsumeClose is called when a close request surfaces while the wizard is
// presented. A close coming from the network step completes the wizard, in
// which case it is consumed here. A close the wizard raised itself, through
// the Home control, passes through so the host can dismiss it.
func (w *Wizard) ConsumeClose() bool {
	if w.closing {
		w.closing = false
		return false
	}
	w.completed = true
	w.cursor = 0
	w.rebootErr = ""
	logging.Info("Setup wizard completed")
	return true
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.steps[w.idx].screen.Init()
}

func (w *Wizard) lastStep() bool { return w.idx == len(w.steps)-1 }

// next advances to the following step. It is a no-op on the last step,
// which completes through its own Done control.
func (w *Wizard) next() {
	if w.lastStep() {
		return
	}
	w.idx++
	w.focusNext = false
	w.startStep()
}

// reset returns the wizard to its initial state with fresh step screens.
func (w *Wizard) reset() {
	w.steps = buildSteps(w.mgr)
	w.idx = 0
	w.completed = false
	w.focusNext = false
	w.cursor = 0
	w.rebootErr = ""
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		for _, st := range w.steps {
			st.screen.Update(msg)
		}
		return w, nil

	case tea.KeyMsg:
		if w.completed {
			return w, w.updateCompleted(msg)
		}
		switch msg.String() {
		case "tab", "shift+tab":
			if !w.lastStep() {
				w.focusNext = !w.focusNext
				return w, nil
			}
		case "enter":
			if w.focusNext {
				w.next()
				return w, nil
			}
		}
	}

	// Everything else belongs to the current step.
	if w.focusNext {
		return w, nil
	}
	_, cmd := w.steps[w.idx].screen.Update(msg)
	return w, cmd
}

// completion screen controls, in display order.
func (w *Wizard) completionButtons() []string {
	if w.initialSetup {
		return []string{"Reboot"}
	}
	return []string{"Home", "Reboot"}
}

func (w *Wizard) updateCompleted(msg tea.KeyMsg) tea.Cmd {
	buttons := w.completionButtons()
	switch msg.String() {
	case "tab", "down", "right":
		w.cursor = (w.cursor + 1) % len(buttons)
	case "shift+tab", "up", "left":
		w.cursor = (w.cursor - 1 + len(buttons)) % len(buttons)
	case "enter":
		switch buttons[w.cursor] {
		case "Home":
			w.closing = true
			w.reset()
			return requestClose
		case "Reboot":
			if err := w.mgr.Reboot(); err != nil {
				logging.Error("Reboot failed", zap.Error(err))
				w.rebootErr = fmt.Sprintf("Failed to reboot system: %v", err)
			}
		}
	}
	return nil
}

// View implements tea.Model.
func (w *Wizard) View() string {
	if w.completed {
		return w.viewCompleted()
	}

	var b strings.Builder
	header := fmt.Sprintf("Setup Wizard  |  Step %d of %d: %s",
		w.idx+1, len(w.steps), w.steps[w.idx].label)
	b.WriteString(HeaderStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(w.steps[w.idx].screen.View())

	if !w.lastStep() {
		b.WriteString("\n\n")
		b.WriteString(RenderButton("Next", w.focusNext))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("tab switch to Next, enter activate"))
	}

	return RenderScreenBox("Setup Wizard", b.String(), w.width)
}

func (w *Wizard) viewCompleted() string {
	var b strings.Builder
	b.WriteString(ResponseStyle.Render("Setup complete."))
	b.WriteString("\n\n")
	b.WriteString("Reboot the system to apply all configuration changes.")
	b.WriteString("\n\n")

	if w.rebootErr != "" {
		b.WriteString(ErrorStyle.Render(w.rebootErr))
		b.WriteString("\n\n")
	}

	rendered := make([]string, 0, 2)
	for i, label := range w.completionButtons() {
		rendered = append(rendered, RenderButton(label, i == w.cursor))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))

	return RenderScreenBox("Setup Wizard", b.String(), w.width)
}
