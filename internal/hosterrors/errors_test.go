package hosterrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewLoaderErrorCarriesCauseVerbatim(t *testing.T) {
	cause := errors.New("undefined symbol: foo")
	err := NewLoaderError("./bad.so", cause)

	if !IsLoaderError(err) {
		t.Fatalf("expected IsLoaderError, got kind from %v", err)
	}
	if got := err.Error(); got == "" || !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap to %v, got %v (msg %q)", cause, errors.Unwrap(err), got)
	}
}

func TestKindHelpersAreMutuallyExclusive(t *testing.T) {
	errs := []error{
		NewLoaderError("p", nil),
		NewSymbolMissing("p", "CreateModule", nil),
		NewInitFailed("m"),
		NewStartFailed("m"),
		NewNameCollision("m"),
		NewNotFound("m"),
		NewPluginPanic("m", "boom"),
	}
	checks := []func(error) bool{
		IsLoaderError, IsSymbolMissing, IsInitFailed, IsStartFailed,
		IsNameCollision, IsNotFound, IsPluginPanic,
	}

	for i, err := range errs {
		matches := 0
		for _, check := range checks {
			if check(err) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("error %d (%v) matched %d kind predicates, want exactly 1", i, err, matches)
		}
	}
}

func TestNewPluginPanicWrapsRecoveredValue(t *testing.T) {
	func() {
		defer func() {
			r := recover()
			err := NewPluginPanic("Calculator", r)
			if !IsPluginPanic(err) {
				t.Fatalf("expected PluginPanic kind")
			}
			if err.Cause == nil || fmt.Sprint(err.Cause) != "divide by zero" {
				t.Fatalf("expected cause to carry recovered value, got %v", err.Cause)
			}
		}()
		panic("divide by zero")
	}()
}

func TestNotFoundIsWrappedErrorsAsCompatible(t *testing.T) {
	err := fmt.Errorf("context: %w", NewNotFound("Calculator"))
	if !IsNotFound(err) {
		t.Fatalf("expected wrapped NotFound to still match IsNotFound")
	}
}
