package dynlib

import (
	"testing"

	"github.com/pluginhost/pluginhost/internal/hosterrors"
)

func TestDefaultOpenerReturnsLoaderErrorForMissingPath(t *testing.T) {
	_, err := Default.Open("./does_not_exist.so")
	if err == nil {
		t.Fatal("expected an error opening a nonexistent plugin path")
	}
	if !hosterrors.IsLoaderError(err) {
		t.Fatalf("expected LoaderError, got %v", err)
	}
}

func TestFakeOpenerResolvesRegisteredSymbols(t *testing.T) {
	fake := NewFakeOpener()
	fake.AddPlugin("./calc.so", map[string]any{
		"CreateModule": func() {},
	})

	h, err := fake.Open("./calc.so")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Path() != "./calc.so" {
		t.Fatalf("Path() = %q, want ./calc.so", h.Path())
	}

	if _, err := h.Symbol("CreateModule"); err != nil {
		t.Fatalf("expected CreateModule symbol to resolve: %v", err)
	}

	if _, err := h.Symbol("Nope"); err == nil || !hosterrors.IsSymbolMissing(err) {
		t.Fatalf("expected SymbolMissing for unknown symbol, got %v", err)
	}
}

func TestFakeOpenerUnregisteredPathFailsWithLoaderError(t *testing.T) {
	fake := NewFakeOpener()
	_, err := fake.Open("./unregistered.so")
	if err == nil || !hosterrors.IsLoaderError(err) {
		t.Fatalf("expected LoaderError for unregistered path, got %v", err)
	}
}

func TestHandleReleaseIsIdempotentAndObservable(t *testing.T) {
	fake := NewFakeOpener()
	fake.AddPlugin("./calc.so", map[string]any{})
	h, err := fake.Open("./calc.so")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.Released() {
		t.Fatal("handle should not be released before Release is called")
	}
	h.Release()
	h.Release() // idempotent
	if !h.Released() {
		t.Fatal("handle should report released after Release")
	}
}
