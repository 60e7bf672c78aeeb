package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ParseLevel maps the configured level name onto a logrus level.
// WARNING and CRITICAL are accepted as aliases of warn and fatal.
func ParseLevel(name string) (logrus.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return logrus.DebugLevel, nil
	case "INFO":
		return logrus.InfoLevel, nil
	case "WARN", "WARNING":
		return logrus.WarnLevel, nil
	case "ERROR":
		return logrus.ErrorLevel, nil
	case "CRITICAL", "FATAL":
		return logrus.FatalLevel, nil
	}
	return logrus.InfoLevel, fmt.Errorf("%w: log.level %q is not one of DEBUG, INFO, WARNING, ERROR, CRITICAL", ErrInvalidConfig, name)
}
