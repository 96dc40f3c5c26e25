package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// RequestIDKey is the gin context key holding the id assigned by the request id middleware.
const RequestIDKey = "request_id"

var (
	InfoLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

// InitLogger configures both loggers. level is a logrus level name, format is
// "json" or "text".
func InitLogger(level, format string) {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	// Set output untuk InfoLogger ke stdout
	InfoLogger.SetOutput(os.Stdout)
	// Set output untuk ErrorLogger ke stderr
	ErrorLogger.SetOutput(os.Stderr)

	var formatter logrus.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if strings.EqualFold(format, "json") {
		formatter = &logrus.JSONFormatter{}
	}
	InfoLogger.SetFormatter(formatter)
	ErrorLogger.SetFormatter(formatter)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	InfoLogger.SetLevel(lvl)
	// The error logger never goes below warn.
	if lvl > logrus.WarnLevel {
		ErrorLogger.SetLevel(logrus.WarnLevel)
	} else {
		ErrorLogger.SetLevel(lvl)
	}
}
