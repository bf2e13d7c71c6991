package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

// InitLogger configures both loggers. level is parsed with logrus.ParseLevel and
// falls back to info when it cannot be parsed.
func InitLogger(level ...string) {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl := logrus.InfoLevel
	if len(level) > 0 && level[0] != "" {
		if parsed, err := logrus.ParseLevel(level[0]); err == nil {
			lvl = parsed
		}
	}
	InfoLogger.SetLevel(lvl)
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}
