package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// InitLogger initializes the structured logger. Level falls back to
// LOG_LEVEL, then to debug in development and info otherwise; outside
// development all output is JSON.
func InitLogger(logLevel string, isDevelopment bool) *logrus.Logger {
	log := logrus.New()

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel == "" {
		if isDevelopment {
			logLevel = "debug"
		} else {
			logLevel = "info"
		}
	}

	if level, err := logrus.ParseLevel(strings.ToLower(logLevel)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", logLevel).Warn("Invalid LOG_LEVEL, using INFO")
	}

	// Set formatter based on environment
	if !isDevelopment || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.SetOutput(os.Stdout)

	// Store global logger reference
	Logger = log

	return log
}

// GetLogger returns the global logger instance, initializing it on first use
func GetLogger() *logrus.Logger {
	if Logger == nil {
		return InitLogger("", true)
	}
	return Logger
}

// WithPlayer creates a logger entry scoped to one player
func WithPlayer(name string) *logrus.Entry {
	return GetLogger().WithField("player", name)
}

// WithTable creates a logger entry scoped to one stat table
func WithTable(table string) *logrus.Entry {
	return GetLogger().WithField("table", table)
}

// WithChart creates a logger entry scoped to a chart output file
func WithChart(path string) *logrus.Entry {
	return GetLogger().WithField("chart", path)
}
