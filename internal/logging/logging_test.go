package logging

import (
	"strings"
	"testing"
)

func TestTestLoggerCapturesOutput(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("expected log output to contain message, got: %q", out)
	}
	if !strings.Contains(out, "key") || !strings.Contains(out, "value") {
		t.Errorf("expected log output to contain keyvals, got: %q", out)
	}
}

func TestTestLoggerIncludesDebugLevel(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.Debug("diagnostic detail")

	if !strings.Contains(buf.String(), "diagnostic detail") {
		t.Errorf("test logger should record debug messages, got: %q", buf.String())
	}
}

func TestDefaultLoggerIsSingleton(t *testing.T) {
	first := GetDefault()
	second := GetDefault()

	if first != second {
		t.Error("GetDefault should return the same instance")
	}
}
