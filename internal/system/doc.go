// Package system wraps the operating system utilities the console drives.
//
// Hostname, timezone, clock and power state are owned by systemd; this
// package shells out to hostnamectl, timedatectl, reboot and shutdown and
// reports success or failure back to the UI. Reads that fail produce sentinel
// strings rather than errors so screens always have something to display.
//
// Every invocation goes through the Runner interface, so tests substitute a
// fake and assert on the exact argv without touching the host.
package system
