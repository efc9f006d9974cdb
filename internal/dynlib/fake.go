package dynlib

import (
	"sync"

	"github.com/pluginhost/pluginhost/internal/hosterrors"
)

// FakeOpener is an in-memory Opener for tests: it never touches the
// filesystem or Go's plugin loader, the Go analogue of the spec's
// "instrumented plugin constructors/destructors" used to observe
// destroy-then-release ordering without a real shared object.
type FakeOpener struct {
	mu       sync.Mutex
	symbols  map[string]map[string]any // path -> symbol name -> value
	failOpen map[string]error          // path -> error to return from Open
}

// NewFakeOpener returns an empty FakeOpener; register plugins with
// AddPlugin before Open is called against their paths.
func NewFakeOpener() *FakeOpener {
	return &FakeOpener{
		symbols:  make(map[string]map[string]any),
		failOpen: make(map[string]error),
	}
}

// AddPlugin registers a path as openable, exporting the given symbols.
func (f *FakeOpener) AddPlugin(path string, symbols map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.symbols[path] = symbols
}

// FailOpenWith makes a subsequent Open(path) fail with err, as if the OS
// loader had rejected it.
func (f *FakeOpener) FailOpenWith(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOpen[path] = err
}

func (f *FakeOpener) Open(path string) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failOpen[path]; err != nil {
		return nil, hosterrors.NewLoaderError(path, err)
	}
	symbols, ok := f.symbols[path]
	if !ok {
		return nil, hosterrors.NewLoaderError(path, errDefaultNotFound)
	}
	return &fakeHandle{path: path, symbols: symbols}, nil
}

var errDefaultNotFound = fakeErr("no such file or directory")

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

type fakeHandle struct {
	path    string
	symbols map[string]any

	mu       sync.Mutex
	released bool
}

func (h *fakeHandle) Symbol(name string) (any, error) {
	v, ok := h.symbols[name]
	if !ok {
		return nil, hosterrors.NewSymbolMissing(h.path, name, errDefaultNotFound)
	}
	return v, nil
}

func (h *fakeHandle) Path() string { return h.path }

func (h *fakeHandle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.released = true
}

func (h *fakeHandle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}
