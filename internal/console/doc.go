// Package console implements the terminal user interface of the appliance
// configuration console.
//
// The interface is a single Bubble Tea program with two layers. The base
// layer is the Navigator, a collapsible menu tree built from a menu.Spec.
// Above it the Model hosts at most one overlay screen at a time: the
// setting screens, the system information pager and the setup wizard.
// Screens request their own dismissal by emitting a close message; they
// never touch the host directly.
//
// Interactive system utilities such as nmtui and tzselect take over the
// whole terminal. The console suspends itself around them with
// tea.ExecProcess and restores the screen afterwards, whether or not the
// utility succeeded.
package console
