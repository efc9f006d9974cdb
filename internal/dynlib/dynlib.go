// Package dynlib wraps the OS dynamic loader boundary: acquiring a handle
// for a plugin path and resolving named symbols through it. This is the
// only package in the host that touches Go's standard "plugin" package,
// so the rest of the host never has to reason about plugin.Open directly.
//
// A Handle's "release" is a book-keeping step, not an unmap: Go's plugin
// package never unloads a shared object once opened, a documented
// limitation of the runtime, not of this package. Release exists so the
// registry can still exercise and test the ownership-ordering invariant
// (a handle is released strictly after the instance it produced has been
// destroyed) even though the underlying OS mapping outlives it.
package dynlib

import (
	"plugin"
	"sync"

	"github.com/pluginhost/pluginhost/internal/hosterrors"
)

// Handle resolves symbols from one opened plugin. Implementations are not
// safe to use after Release, though Release itself never fails and is
// idempotent.
type Handle interface {
	// Symbol resolves name to its exported value. The returned value's
	// dynamic type matches whatever the plugin exported under that name
	// (a func, for the four factory symbols of internal/module).
	Symbol(name string) (any, error)
	// Path returns the plugin path this handle was opened from.
	Path() string
	// Release marks the handle as no longer needed. Safe to call more
	// than once; only the first call has any effect.
	Release()
	// Released reports whether Release has been called. Exists for
	// tests that assert on handle-release-after-instance-destroy
	// ordering.
	Released() bool
}

// Opener opens a plugin path into a Handle. The production implementation
// (Default) calls plugin.Open; tests substitute a fake that returns
// synthetic handles without touching the filesystem or the Go plugin
// loader, the Go analogue of the spec's "instrumented plugin constructors
// and destructors."
type Opener interface {
	Open(path string) (Handle, error)
}

// Default is the production Opener, backed by Go's plugin package.
var Default Opener = osOpener{}

type osOpener struct{}

func (osOpener) Open(path string) (Handle, error) {
	p, err := plugin.Open(path)
	if err != nil {
		// plugin.Open's error carries the loader's diagnostic string
		// (missing file, ABI mismatch, unresolved symbol at link time)
		// verbatim; NewLoaderError preserves it as Cause.
		return nil, hosterrors.NewLoaderError(path, err)
	}
	return &pluginHandle{path: path, plugin: p}, nil
}

type pluginHandle struct {
	path   string
	plugin *plugin.Plugin

	mu       sync.Mutex
	released bool
}

func (h *pluginHandle) Symbol(name string) (any, error) {
	sym, err := h.plugin.Lookup(name)
	if err != nil {
		return nil, hosterrors.NewSymbolMissing(h.path, name, err)
	}
	return sym, nil
}

func (h *pluginHandle) Path() string { return h.path }

func (h *pluginHandle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.released = true
}

func (h *pluginHandle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}
