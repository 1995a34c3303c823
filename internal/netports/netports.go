// Package netports implements the first-boot network port naming check.
//
// Appliance images record the device's network ports in a key/value file
// (KEY=value per line, dotenv style) at a well-known path. When an image is
// restored onto different hardware the kernel can assign interface names that
// don't follow the predictable naming convention the rest of the system
// expects, and the operator has to walk through initial setup again. The
// console uses this check to decide whether to auto-launch the setup wizard.
package netports

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/procentric/catena/internal/logging"
)

// NeedsSetup reports whether the setup wizard should launch automatically.
//
// It reads the port naming file at path and returns true only when the file
// parses, names at least one port, and no port value contains the expected
// naming substring. A missing or unparsable file means the condition is not
// met: this check must never block a working appliance from reaching the
// menu.
func NeedsSetup(path, expected string) bool {
	ports, err := readPorts(path)
	if err != nil {
		logging.Debug("Port naming check skipped",
			zap.String("path", path),
			zap.Error(err),
		)
		return false
	}
	if len(ports) == 0 {
		// No ports recorded: nothing to judge.
		return false
	}

	for name, value := range ports {
		if strings.Contains(value, expected) {
			logging.Debug("Port follows expected naming convention",
				zap.String("port", name),
				zap.String("value", value),
			)
			return false
		}
	}

	logging.Info("No port follows the expected naming convention, setup required",
		zap.String("path", path),
		zap.String("expected", expected),
	)
	return true
}

// readPorts loads the key/value port file.
func readPorts(path string) (map[string]string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	ports := make(map[string]string)
	for _, key := range v.AllKeys() {
		ports[key] = v.GetString(key)
	}
	return ports, nil
}
