// internal/pkg/logger/logger.go
package logger

import (
	"io"
	"time"

	"github.com/Voidkillxx/FinalCaseStudy/internal/config"
	"github.com/sirupsen/logrus"
)

// New builds the process logger from the logging configuration
func New(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	// Set log level
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	// Debug output only when the app runs in debug mode
	if level > logrus.InfoLevel && !cfg.App.Debug {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

// Discard returns a logger that drops everything; used by tests
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
