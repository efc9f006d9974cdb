package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestInitForCLIFiltersBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)

	Debug("Test", "should not appear")
	Info("Test", "should not appear either")
	Warn("Test", "warning: %s", "disk low")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Fatalf("expected debug/info to be filtered, got: %s", out)
	}
	if !strings.Contains(out, "warning: disk low") {
		t.Fatalf("expected warn message in output, got: %s", out)
	}
	if !strings.Contains(out, "component=Test") {
		t.Fatalf("expected component tag in output, got: %s", out)
	}
}

func TestErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Error("ModuleRegistry", errors.New("symbol missing"), "load failed for %s", "calc.so")

	out := buf.String()
	if !strings.Contains(out, "load failed for calc.so") {
		t.Fatalf("expected formatted message, got: %s", out)
	}
	if !strings.Contains(out, "symbol missing") {
		t.Fatalf("expected error text in output, got: %s", out)
	}
}

func TestCriticalIsTaggedCritical(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Critical("HealthMonitor", "module %s is CRITICAL", "Calculator")

	out := buf.String()
	if !strings.Contains(out, "critical=true") {
		t.Fatalf("expected critical=true attribute, got: %s", out)
	}
}

func TestLogrSinkWithoutInitReturnsSafeZeroValue(t *testing.T) {
	defaultLogger = nil
	sink := LogrSink()
	// The zero logr.Logger must not panic when used.
	sink.Info("noop")
}
