package logger

import (
	"testing"

	"github.com/Voidkillxx/FinalCaseStudy/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "warn", Format: "json"}}
	l := New(cfg)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	cfg.Logging = config.LoggingConfig{Level: "nonsense", Format: "text"}
	l = New(cfg)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestNew_DebugFollowsAppDebug(t *testing.T) {
	cfg := &config.Config{
		App:     config.AppConfig{Debug: false},
		Logging: config.LoggingConfig{Level: "debug"},
	}
	assert.Equal(t, logrus.InfoLevel, New(cfg).GetLevel())

	cfg.App.Debug = true
	assert.Equal(t, logrus.DebugLevel, New(cfg).GetLevel())

	cfg.Logging.Level = "error"
	assert.Equal(t, logrus.ErrorLevel, New(cfg).GetLevel(), "quieter levels are kept")
}
