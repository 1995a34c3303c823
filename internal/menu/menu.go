// Package menu models the console's menu as a declarative tree.
//
// A Spec describes one node: interior nodes carry ordered children, leaf
// nodes carry an Action. The tree is built once at startup and read-only
// afterwards; view state (expansion, focus) lives in the navigator, not
// here.
package menu

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Action is the behaviour attached to a leaf node. Exactly two shapes exist:
// Callable and Exec are invoked in place, Screen is presented as a modal
// overlay.
type Action interface {
	// ActionName identifies the action in logs and status messages.
	ActionName() string
}

// Callable is a zero-argument operation invoked synchronously on selection.
// Failure is reported to the operator and logged; it never terminates the
// session.
type Callable struct {
	Name string
	Run  func() error
}

// ActionName implements Action.
func (c Callable) ActionName() string { return c.Name }

// Exec is an external command that takes over the terminal for its duration
// (nmtui and friends). The navigator suspends the screen driver around it.
type Exec struct {
	Name string
	Argv []string
}

// ActionName implements Action.
func (e Exec) ActionName() string { return e.Name }

// Screen is a stateful sub-screen presented as a modal overlay on top of the
// menu. A Screen instance is constructed once and re-presented on each
// selection, so its internal state persists across visits unless it resets
// itself. Screens request dismissal by emitting a close message; hosts
// dismiss exactly once per presentation.
type Screen interface {
	Action
	tea.Model
}

// Starter is an optional Screen lifecycle hook invoked just before each
// presentation. A failing Start aborts the presentation.
type Starter interface {
	Start() error
}

// Spec is one node of the declarative menu tree. A node has exactly one of
// Children and Action: never both, never neither.
type Spec struct {
	Name     string
	Children []Spec
	Action   Action
}

// IsLeaf reports whether the node carries an action.
func (s Spec) IsLeaf() bool { return s.Action != nil }

// Validate checks the exactly-one-of-children-and-action invariant across
// the whole subtree. Menu trees are static, so a violation is a programming
// error surfaced at startup.
func (s Spec) Validate() error {
	return s.validate(nil)
}

func (s Spec) validate(path []int) error {
	hasChildren := len(s.Children) > 0
	hasAction := s.Action != nil
	if hasChildren == hasAction {
		return fmt.Errorf("menu node %q at %v: exactly one of children and action required", s.Name, path)
	}
	for i, child := range s.Children {
		if err := child.validate(append(path, i)); err != nil {
			return err
		}
	}
	return nil
}

// At resolves the node addressed by path, a sequence of child indices from
// this node. Paths are generated by the navigator over a static tree, so an
// out-of-range index is a programming error, returned for the caller to
// handle as one.
func (s Spec) At(path []int) (Spec, error) {
	node := s
	for depth, idx := range path {
		if idx < 0 || idx >= len(node.Children) {
			return Spec{}, fmt.Errorf("menu path %v: index %d out of range at depth %d (%q has %d children)",
				path, idx, depth, node.Name, len(node.Children))
		}
		node = node.Children[idx]
	}
	return node, nil
}
