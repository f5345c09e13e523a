package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// Init configures the global logger from config values.
func Init(level, format string) error {
	Logger = logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(logLevel)

	if format == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	}

	Logger.SetOutput(os.Stdout)
	return nil
}

// Get returns the global logger, initializing it with defaults when needed.
func Get() *logrus.Logger {
	if Logger == nil {
		Init("info", "text")
	}
	return Logger
}
