package console

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/procentric/catena/internal/logging"
	"github.com/procentric/catena/internal/menu"
)

// navigatorKeyMap defines key bindings for the menu tree.
type navigatorKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	First    key.Binding
	Last     key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Select   key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k navigatorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k navigatorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Last},
		{k.Expand, k.Collapse, k.Select, k.Quit},
	}
}

func defaultNavigatorKeys() navigatorKeyMap {
	return navigatorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		First: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last"),
		),
		Expand: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "expand"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "collapse"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// treeNode is the mutable view state for one visited menu position. Nodes
// are created lazily on first visit and cached for the session.
type treeNode struct {
	expanded bool
}

// visibleEntry is one rendered row of the tree.
type visibleEntry struct {
	path  []int
	spec  menu.Spec
	depth int
}

// Navigator is a focusable, collapsible tree view over a menu.Spec. It owns
// a single focused row; activating a branch toggles it, activating a leaf
// dispatches the leaf's action.
type Navigator struct {
	root  menu.Spec
	nodes map[string]*treeNode

	visible []visibleEntry
	cursor  int

	status   string
	statErr  bool
	width    int
	height   int
	helpView help.Model
	keys     navigatorKeyMap
}

// NewNavigator creates a navigator over root with the root node expanded.
func NewNavigator(root menu.Spec) *Navigator {
	n := &Navigator{
		root:     root,
		nodes:    make(map[string]*treeNode),
		helpView: help.New(),
		keys:     defaultNavigatorKeys(),
	}
	n.node(nil).expanded = true
	n.rebuild()
	return n
}

func pathKey(path []int) string {
	if len(path) == 0 {
		return "root"
	}
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, "/")
}

// node returns the view state for path, creating it on first visit.
func (n *Navigator) node(path []int) *treeNode {
	k := pathKey(path)
	if t, ok := n.nodes[k]; ok {
		return t
	}
	t := &treeNode{}
	n.nodes[k] = t
	return t
}

// rebuild recomputes the visible rows from the expansion state. The view is
// always derived from state; rows are never edited in place.
func (n *Navigator) rebuild() {
	n.visible = n.visible[:0]
	n.walk(nil, n.root, 0)
	if n.cursor >= len(n.visible) {
		n.cursor = len(n.visible) - 1
	}
	if n.cursor < 0 {
		n.cursor = 0
	}
}

func (n *Navigator) walk(path []int, spec menu.Spec, depth int) {
	entry := visibleEntry{
		path:  append([]int(nil), path...),
		spec:  spec,
		depth: depth,
	}
	n.visible = append(n.visible, entry)
	if spec.IsLeaf() || !n.node(entry.path).expanded {
		return
	}
	for i, child := range spec.Children {
		n.walk(append(path, i), child, depth+1)
	}
}

// SetSize records the available terminal area.
func (n *Navigator) SetSize(width, height int) {
	n.width = width
	n.height = height
	n.helpView.Width = width
}

// Init implements tea.Model.
func (n *Navigator) Init() tea.Cmd { return nil }

// Update implements tea.Model. Only navigation and activation keys are
// handled; everything else falls through.
func (n *Navigator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		n.SetSize(msg.Width, msg.Height)

	case execDoneMsg:
		logging.LogCommand([]string{msg.name}, msg.err)
		if msg.err != nil {
			n.setError(fmt.Sprintf("%s failed: %v", msg.name, msg.err))
		} else {
			n.setStatus(fmt.Sprintf("%s finished", msg.name))
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, n.keys.Up):
			if n.cursor > 0 {
				n.cursor--
			}
		case key.Matches(msg, n.keys.Down):
			if n.cursor < len(n.visible)-1 {
				n.cursor++
			}
		case key.Matches(msg, n.keys.First):
			n.cursor = 0
		case key.Matches(msg, n.keys.Last):
			n.cursor = len(n.visible) - 1
		case key.Matches(msg, n.keys.Expand):
			n.expandCurrent()
		case key.Matches(msg, n.keys.Collapse):
			n.collapseCurrent()
		case key.Matches(msg, n.keys.Select):
			return n, n.activate()
		}
	}
	return n, nil
}

func (n *Navigator) current() (visibleEntry, bool) {
	if n.cursor < 0 || n.cursor >= len(n.visible) {
		return visibleEntry{}, false
	}
	return n.visible[n.cursor], true
}

func (n *Navigator) expandCurrent() {
	entry, ok := n.current()
	if !ok || entry.spec.IsLeaf() {
		return
	}
	n.node(entry.path).expanded = true
	n.rebuild()
}

// collapseCurrent collapses the focused branch, or moves focus to the parent
// when the focused node is a leaf or already collapsed.
func (n *Navigator) collapseCurrent() {
	entry, ok := n.current()
	if !ok {
		return
	}
	if !entry.spec.IsLeaf() && n.node(entry.path).expanded {
		n.node(entry.path).expanded = false
		n.rebuild()
		return
	}
	if len(entry.path) == 0 {
		return
	}
	parent := pathKey(entry.path[:len(entry.path)-1])
	for i, row := range n.visible {
		if pathKey(row.path) == parent {
			n.cursor = i
			return
		}
	}
}

// activate dispatches the focused row: branches toggle, leaves run their
// action. Action failures surface on the status line and never unwind into
// the event loop.
func (n *Navigator) activate() tea.Cmd {
	entry, ok := n.current()
	if !ok {
		return nil
	}

	// Re-resolve through the spec tree; a dangling path is a programming
	// error, logged and ignored rather than crashing the session.
	spec, err := n.root.At(entry.path)
	if err != nil {
		logging.Error("Menu path resolution failed", zap.Error(err))
		n.setError("internal menu error, see log")
		return nil
	}

	if !spec.IsLeaf() {
		state := n.node(entry.path)
		state.expanded = !state.expanded
		n.rebuild()
		return nil
	}

	switch action := spec.Action.(type) {
	case menu.Callable:
		err := runCallable(action)
		logging.LogAction(action.Name, err)
		if err != nil {
			n.setError(fmt.Sprintf("%s failed: %v", action.Name, err))
		} else {
			n.setStatus("")
		}
		return nil

	case menu.Exec:
		logging.Debug("Handing terminal to interactive command",
			zap.String("action", action.Name),
			zap.Strings("argv", action.Argv),
		)
		name := action.Name
		c := exec.Command(action.Argv[0], action.Argv[1:]...)
		return tea.ExecProcess(c, func(err error) tea.Msg {
			return execDoneMsg{name: name, err: err}
		})

	case menu.Screen:
		n.setStatus("")
		return func() tea.Msg { return presentMsg{screen: action} }

	default:
		logging.Error("Unknown action variant", zap.String("name", spec.Action.ActionName()))
		return nil
	}
}

// runCallable invokes a callable action, converting panics into errors so a
// misbehaving action cannot take the console down.
func runCallable(c menu.Callable) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action panic: %v", r)
		}
	}()
	if c.Run == nil {
		return nil
	}
	return c.Run()
}

func (n *Navigator) setStatus(msg string) {
	n.status = msg
	n.statErr = false
}

func (n *Navigator) setError(msg string) {
	n.status = msg
	n.statErr = true
}

// View implements tea.Model.
func (n *Navigator) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(WelcomeMsg))
	b.WriteString("\n\n")

	for i, entry := range n.visible {
		line := strings.Repeat("  ", entry.depth) + n.marker(entry) + " " + entry.spec.Name
		switch {
		case i == n.cursor:
			line = FocusedLineStyle.Render(line)
		case entry.spec.IsLeaf():
			line = LeafStyle.Render(line)
		default:
			line = BranchStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if n.status != "" {
		b.WriteString("\n")
		if n.statErr {
			b.WriteString(ErrorStyle.Render(n.status))
		} else {
			b.WriteString(StatusStyle.Render(n.status))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// HelpText returns the footer help for the menu view.
func (n *Navigator) HelpText() string {
	return n.helpView.View(n.keys)
}

func (n *Navigator) marker(entry visibleEntry) string {
	if entry.spec.IsLeaf() {
		return "·"
	}
	if n.node(entry.path).expanded {
		return "▾"
	}
	return "▸"
}
