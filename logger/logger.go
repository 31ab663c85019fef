package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// New builds the process logger. format is "json" or "text"; an unknown level
// falls back to info.
func New(level, format string) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		formatter := &prefixed.TextFormatter{FullTimestamp: true}
		formatter.SetColorScheme(&prefixed.ColorScheme{DebugLevelStyle: "green+b", InfoLevelStyle: "green+h"})
		log.SetFormatter(formatter)
	}
	return log
}

// Component returns an entry tagged with the component name, rendered as the
// line prefix by the text formatter.
func Component(log logrus.FieldLogger, name string) *logrus.Entry {
	return log.WithField("prefix", name)
}
