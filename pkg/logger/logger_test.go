package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	// Reset logger before each test
	Logger = nil

	tests := []struct {
		name          string
		logLevel      string
		isDevelopment bool
		envLevel      string
		expectedLevel logrus.Level
		expectJSON    bool
	}{
		{
			name:          "development defaults to debug text",
			isDevelopment: true,
			expectedLevel: logrus.DebugLevel,
			expectJSON:    false,
		},
		{
			name:          "production defaults to info json",
			isDevelopment: false,
			expectedLevel: logrus.InfoLevel,
			expectJSON:    true,
		},
		{
			name:          "explicit level wins",
			logLevel:      "warn",
			isDevelopment: true,
			expectedLevel: logrus.WarnLevel,
			expectJSON:    false,
		},
		{
			name:          "LOG_LEVEL fallback",
			envLevel:      "error",
			isDevelopment: true,
			expectedLevel: logrus.ErrorLevel,
			expectJSON:    false,
		},
		{
			name:          "invalid level defaults to info",
			logLevel:      "not-a-level",
			isDevelopment: true,
			expectedLevel: logrus.InfoLevel,
			expectJSON:    false,
		},
		{
			name:          "case insensitive level",
			logLevel:      "DEBUG",
			isDevelopment: false,
			expectedLevel: logrus.DebugLevel,
			expectJSON:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envLevel != "" {
				os.Setenv("LOG_LEVEL", tt.envLevel)
			} else {
				os.Unsetenv("LOG_LEVEL")
			}
			os.Unsetenv("LOG_FORMAT")

			// Reset logger to force reinitialization
			Logger = nil

			logger := InitLogger(tt.logLevel, tt.isDevelopment)

			assert.Equal(t, tt.expectedLevel, logger.GetLevel(), "log level mismatch")

			if tt.expectJSON {
				_, ok := logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "expected JSON formatter")
			} else {
				_, ok := logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "expected text formatter")
			}

			os.Unsetenv("LOG_LEVEL")
		})
	}
}

func TestLogFormatEnvForcesJSON(t *testing.T) {
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_FORMAT")

	Logger = nil
	logger := InitLogger("", true)

	_, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok, "LOG_FORMAT=json should force JSON even in development")
}

func TestLogOutput(t *testing.T) {
	Logger = nil
	logger := InitLogger("debug", false)

	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.WithFields(logrus.Fields{
		"player": "Drew Brees",
		"table":  "quarterbacks",
	}).Info("test message")

	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err, "output should be valid JSON")

	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "info", logEntry["level"])
	assert.Equal(t, "Drew Brees", logEntry["player"])
	assert.Equal(t, "quarterbacks", logEntry["table"])
	assert.Contains(t, logEntry, "time")
}

func TestFieldHelpers(t *testing.T) {
	Logger = nil
	logger := InitLogger("info", false)

	var buf bytes.Buffer
	logger.SetOutput(&buf)

	tests := []struct {
		name          string
		log           func()
		expectedField string
		expectedValue string
	}{
		{
			name:          "WithPlayer",
			log:           func() { WithPlayer("Drew Brees").Info("player added") },
			expectedField: "player",
			expectedValue: "Drew Brees",
		},
		{
			name:          "WithTable",
			log:           func() { WithTable("kickers").Info("table loaded") },
			expectedField: "table",
			expectedValue: "kickers",
		},
		{
			name:          "WithChart",
			log:           func() { WithChart("points.png").Info("chart written") },
			expectedField: "chart",
			expectedValue: "points.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()

			var logEntry map[string]interface{}
			err := json.Unmarshal(buf.Bytes(), &logEntry)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedValue, logEntry[tt.expectedField])
		})
	}
}

func TestGetLogger(t *testing.T) {
	// Reset logger
	Logger = nil

	// First call should initialize
	logger1 := GetLogger()
	assert.NotNil(t, logger1)

	// Second call should return same instance
	logger2 := GetLogger()
	assert.Same(t, logger1, logger2)
}
