package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init sets up the process-wide structured logger. JSON output so log
// aggregators can index fields without extra parsing.
func Init() {
	Log = logrus.New()
	Log.SetFormatter(&logrus.JSONFormatter{})
	Log.SetOutput(os.Stdout)

	level := logrus.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	Log.SetLevel(level)
}

// L returns the shared logger, initializing it on first use so tests
// and library callers never hit a nil logger.
func L() *logrus.Logger {
	if Log == nil {
		Init()
	}
	return Log
}
