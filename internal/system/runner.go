package system

import (
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes external commands. The console talks to the operating
// system exclusively through this interface, which keeps every screen
// testable with a fake.
type Runner interface {
	// Run executes argv and waits for it to finish. A non-zero exit returns
	// an error carrying the command's output where available.
	Run(argv ...string) error
	// Output executes argv and returns its standard output.
	Output(argv ...string) (string, error)
}

// ExecRunner runs commands with os/exec. Calls block until the command
// finishes; the commands the console issues are fast and local.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(argv ...string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}

// Output implements Runner.
func (ExecRunner) Output(argv ...string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", argv[0], err)
	}
	return string(out), nil
}
