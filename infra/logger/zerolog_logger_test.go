package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	assert.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	l := NewZerologLogger("test")
	assert.NotNil(t, l)
	// Suppressed levels must still be safe to call.
	l.Debugf("debug")
	l.Infof("info")
	l.Warnf("warn")
}

func TestNewReturnsZerolog(t *testing.T) {
	l := New("component")
	_, ok := l.(*ZerologLogger)
	assert.True(t, ok)
}
