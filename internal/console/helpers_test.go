package console

import (
	"fmt"
	"strings"
	"testing"

	"github.com/procentric/catena/internal/system"
)

// fakeRunner is a scriptable system.Runner for screen tests. Outputs are
// keyed by the joined argv; Run failures are keyed the same way.
type fakeRunner struct {
	runCalls [][]string
	outputs  map[string]string
	runErrs  map[string]error
	outErr   error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: make(map[string]string),
		runErrs: make(map[string]error),
	}
}

func (f *fakeRunner) Run(argv ...string) error {
	f.runCalls = append(f.runCalls, argv)
	return f.runErrs[strings.Join(argv, " ")]
}

func (f *fakeRunner) Output(argv ...string) (string, error) {
	if f.outErr != nil {
		return "", f.outErr
	}
	key := strings.Join(argv, " ")
	out, ok := f.outputs[key]
	if !ok {
		return "", fmt.Errorf("no scripted output for %q", key)
	}
	return out, nil
}

func (f *fakeRunner) ranCommand(cmd string) bool {
	for _, argv := range f.runCalls {
		if strings.Join(argv, " ") == cmd {
			return true
		}
	}
	return false
}

// newTestManager returns a Manager over a fresh fakeRunner with sudo off and
// a fixed hostname.
func newTestManager(t *testing.T) *system.Manager {
	t.Helper()
	_, mgr := newTestRunnerManager(t)
	return mgr
}

func newTestRunnerManager(t *testing.T) (*fakeRunner, *system.Manager) {
	t.Helper()
	runner := newFakeRunner()
	runner.outputs["timedatectl show --property=NTP"] = "NTP=no\n"
	runner.outputs["timedatectl show --property=Timezone"] = "Timezone=Europe/London\n"
	runner.outputs["timedatectl status"] = "Local time: Sat 2026-08-30 12:00:00 BST\n"
	mgr := system.NewManager(runner, false)
	mgr.HostnameSource = func() (string, error) { return "catena-01", nil }
	return runner, mgr
}
