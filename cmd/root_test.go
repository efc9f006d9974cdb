package cmd

import (
	"errors"
	"testing"

	"github.com/pluginhost/pluginhost/internal/hosterrors"
)

func TestSetVersionAndGetVersion(t *testing.T) {
	original := rootCmd.Version
	defer func() { rootCmd.Version = original }()

	SetVersion("1.2.3-test")
	if got := GetVersion(); got != "1.2.3-test" {
		t.Errorf("GetVersion() = %q, want %q", got, "1.2.3-test")
	}
}

func TestRootCommandProperties(t *testing.T) {
	if rootCmd.Use != "pluginhostctl" {
		t.Errorf("Use = %q, want %q", rootCmd.Use, "pluginhostctl")
	}
	if rootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if !rootCmd.SilenceUsage {
		t.Error("expected SilenceUsage to be true")
	}
}

func TestExitCodeForNotFoundError(t *testing.T) {
	err := hosterrors.NewNotFound("some-module")
	if got := exitCodeFor(err); got != ExitCodeNotFound {
		t.Errorf("exitCodeFor(NotFound) = %d, want %d", got, ExitCodeNotFound)
	}
}

func TestExitCodeForGenericError(t *testing.T) {
	if got := exitCodeFor(errors.New("boom")); got != ExitCodeError {
		t.Errorf("exitCodeFor(generic) = %d, want %d", got, ExitCodeError)
	}
}

func TestLevelFromString(t *testing.T) {
	cases := map[string]string{
		"debug":    "DEBUG",
		"warn":     "WARN",
		"error":    "ERROR",
		"critical": "CRITICAL",
		"info":     "INFO",
		"bogus":    "INFO",
	}
	for input, want := range cases {
		if got := levelFromString(input).String(); got != want {
			t.Errorf("levelFromString(%q).String() = %q, want %q", input, got, want)
		}
	}
}
