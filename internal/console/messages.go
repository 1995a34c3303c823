package console

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/procentric/catena/internal/menu"
)

// closeMsg is the close notification a presented screen emits when the
// operator asks to leave it. The overlay host dismisses on it exactly once;
// the setup wizard consumes it for its network step instead.
type closeMsg struct{}

// requestClose is the tea.Cmd screens return to fire their close
// notification.
func requestClose() tea.Msg { return closeMsg{} }

// presentMsg asks the overlay host to present a screen on top of the menu.
type presentMsg struct {
	screen menu.Screen
}

// execDoneMsg reports the outcome of an interactive command that had taken
// over the terminal.
type execDoneMsg struct {
	name string
	err  error
}

// tzPickedMsg reports the zone chosen through the interactive tzselect
// session, or the error that ended it.
type tzPickedMsg struct {
	zone string
	err  error
}
