// Package registry owns every loaded module: it enforces the
// constructed/inited/running/stopped/destroyed lifecycle on the way in
// and out, keeps the name-indexed set of what is currently loaded, and
// is the only package that ever calls across the plugin boundary into
// module code.
package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pluginhost/pluginhost/internal/dynlib"
	"github.com/pluginhost/pluginhost/internal/hosterrors"
	"github.com/pluginhost/pluginhost/internal/module"
	"github.com/pluginhost/pluginhost/pkg/logging"

	"golang.org/x/sync/errgroup"
)

const logComponent = "ModuleRegistry"

// Registry is the module host's single source of truth for what is
// loaded. The queries (Get, Info, AllNames, IsLoaded, NameForPath,
// Count) take mu for reading. Load runs CreateModule, Init, and the
// Name/Version/Dependencies reads without holding mu, then holds mu
// exclusively across the name-collision check, the insert, and Start.
// Unload holds mu only for the lookup and delete; Stop, Cleanup and
// DestroyModule run after it is released. A module that never returns
// from Start therefore stalls every other registry call, while one that
// never returns from Init, Stop or Cleanup stalls only its own caller.
// No watchdog timeout guards any plugin call.
//
// Reload holds mu across neither half: it delegates to Unload and Load
// in sequence rather than nesting one call inside the other's held lock.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry

	opener  dynlib.Opener
	monitor HealthRecorder
}

// New builds a Registry that opens plugins through opener and reports
// load/unload/hot-swap events and liveness predicates to monitor. Pass
// dynlib.Default for production use; pass nil for monitor to run
// without health reporting (mostly useful in tests exercising the
// registry in isolation).
func New(opener dynlib.Opener, monitor HealthRecorder) *Registry {
	if monitor == nil {
		monitor = noopRecorder{}
	}
	return &Registry{
		entries: make(map[string]*entry),
		opener:  opener,
		monitor: monitor,
	}
}

// Load opens the plugin at path, resolves its factory symbols,
// constructs and initializes an instance, registers it under the name
// the instance reports, and starts it. Any failure at any step walks
// the partially-constructed instance back to Destroyed and releases the
// handle; nothing is left registered on a failed Load.
func (r *Registry) Load(ctx context.Context, path string) (module.Info, error) {
	corrID := uuid.New().String()
	loadStart := time.Now()
	logging.Debug(logComponent, "[%s] opening plugin at %s", corrID, path)

	handle, err := r.opener.Open(path)
	if err != nil {
		logging.Error(logComponent, err, "[%s] failed to open %s", corrID, path)
		return module.Info{}, err
	}

	createFn, destroyFn, err := resolveFactorySymbols(handle)
	if err != nil {
		handle.Release()
		logging.Error(logComponent, err, "[%s] %s does not satisfy the module ABI", corrID, path)
		return module.Info{}, err
	}

	instance, perr := safeCreate(createFn)
	if perr != nil {
		handle.Release()
		logging.Error(logComponent, perr, "[%s] CreateModule panicked for %s", corrID, path)
		return module.Info{}, perr
	}

	rollback := func() {
		if derr := safeDestroy(destroyFn, instance); derr != nil {
			logging.Error(logComponent, derr, "[%s] DestroyModule panicked while rolling back %s", corrID, path)
		}
		handle.Release()
	}

	initOK, perr := safeInit(ctx, instance)
	if perr != nil {
		rollback()
		return module.Info{}, perr
	}
	if !initOK {
		rollback()
		err := hosterrors.NewInitFailed(safeName(instance))
		logging.Error(logComponent, err, "[%s] Init() returned false for %s", corrID, path)
		return module.Info{}, err
	}

	name := safeName(instance)
	version := safeVersion(instance)
	deps, perr := safeDependencies(instance)
	if perr != nil {
		logging.Error(logComponent, perr, "[%s] Dependencies() panicked for %s", corrID, path)
		deps = nil
	}

	r.mu.Lock()
	if _, exists := r.entries[name]; exists {
		r.mu.Unlock()
		rollback()
		err := hosterrors.NewNameCollision(name)
		logging.Error(logComponent, err, "[%s] refusing to load %s over existing module %q", corrID, path, name)
		return module.Info{}, err
	}

	e := &entry{
		handle:   handle,
		instance: instance,
		destroy:  destroyFn,
		info: module.Info{
			Name:         name,
			Version:      version,
			Path:         path,
			Dependencies: deps,
		},
	}
	r.entries[name] = e

	startOK, perr := safeStart(ctx, instance)
	if perr != nil || !startOK {
		delete(r.entries, name)
		r.mu.Unlock()
		rollback()
		if perr != nil {
			logging.Error(logComponent, perr, "[%s] Start() panicked for %s", corrID, name)
			return module.Info{}, perr
		}
		err := hosterrors.NewStartFailed(name)
		logging.Error(logComponent, err, "[%s] Start() returned false for %s", corrID, name)
		return module.Info{}, err
	}

	e.info.Running = true
	e.info.Healthy = true
	e.info.LoadedAt = time.Now()
	snapshot := e.info
	r.mu.Unlock()

	r.monitor.Register(name, func() bool { return r.livenessOf(name) })
	r.monitor.RecordLoad(name, time.Since(loadStart))

	logging.Info(logComponent, "[%s] loaded %s v%s from %s", corrID, name, version, path)
	return snapshot, nil
}

// Unload stops, cleans up, and destroys the module registered as name,
// then releases its handle. r.mu is held for the map lookup and delete,
// so two concurrent callers can never both observe name present: the
// loser of the race sees it already gone and returns NotFound.
func (r *Registry) Unload(ctx context.Context, name string) error {
	r.mu.Lock()
	e, ok := r.entries[name]
	if !ok {
		r.mu.Unlock()
		return hosterrors.NewNotFound(name)
	}
	delete(r.entries, name)
	r.mu.Unlock()

	// Unregister before any module code runs: the monitor must never be
	// able to invoke a liveness predicate for a module mid-teardown.
	r.monitor.Unregister(name)

	if _, perr := safeStop(ctx, e.instance); perr != nil {
		logging.Error(logComponent, perr, "Stop() panicked for %s during unload", name)
	}
	if _, perr := safeCleanup(ctx, e.instance); perr != nil {
		logging.Error(logComponent, perr, "Cleanup() panicked for %s during unload", name)
	}
	if perr := safeDestroy(e.destroy, e.instance); perr != nil {
		logging.Error(logComponent, perr, "DestroyModule panicked for %s during unload", name)
	}
	e.handle.Release()

	r.monitor.RecordUnload(name)
	logging.Info(logComponent, "unloaded %s", name)
	return nil
}

// Reload hot-swaps the module registered as name: it unloads the
// current instance, then loads a fresh one from the same origin path.
// If the new Load fails, the old instance is not restored — the module
// is left unregistered, matching the spec's choice of a
// fail-stop hot-swap over a best-effort rollback to the previous
// instance. Reload never holds mu across both halves: it calls Unload
// and Load as two independent, fully self-contained operations.
func (r *Registry) Reload(ctx context.Context, name string) (module.Info, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return module.Info{}, hosterrors.NewNotFound(name)
	}
	path := e.info.Path

	if err := r.Unload(ctx, name); err != nil {
		return module.Info{}, err
	}

	info, err := r.Load(ctx, path)
	r.monitor.RecordHotSwap(name, err == nil)
	if err != nil {
		logging.Error(logComponent, err, "hot-swap of %s failed; module is left unregistered", name)
		return module.Info{}, err
	}

	logging.Info(logComponent, "hot-swapped %s: now v%s", name, info.Version)
	return info, nil
}

// Get returns the live Instance registered as name. The returned value
// is a borrowed reference: a concurrent Reload of the same name removes
// this name from the registry and installs a different *entry with a
// different Instance, so a value obtained here before a swap never
// becomes the post-swap instance out from under its holder.
func (r *Registry) Get(name string) (module.Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.instance, true
}

// Info returns a point-in-time snapshot of name's registration state.
func (r *Registry) Info(name string) (module.Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return module.Info{}, false
	}
	return e.info, true
}

// AllNames returns the names of every currently loaded module. The
// order is unspecified.
func (r *Registry) AllNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}

// IsLoaded reports whether name is currently registered. It holds
// exactly when AllNames() contains name.
func (r *Registry) IsLoaded(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// NameForPath returns the name of the loaded module that was opened
// from path, if any. Used by callers (the plugin directory watcher)
// that observe filesystem paths but need to act in terms of module
// names.
func (r *Registry) NameForPath(path string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, e := range r.entries {
		if e.info.Path == path {
			return name, true
		}
	}
	return "", false
}

// Count returns the number of currently loaded modules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Shutdown unloads every currently registered module concurrently and
// waits for all of them to finish. It is a no-op on an empty registry.
// A module that fails to unload does not stop the others from being
// torn down; the first error is returned after every unload has been
// attempted.
func (r *Registry) Shutdown(ctx context.Context) error {
	names := r.AllNames()
	if len(names) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		g.Go(func() error {
			if err := r.Unload(gctx, name); err != nil && !hosterrors.IsNotFound(err) {
				return fmt.Errorf("unload %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// ScanRuntimeSharedLibraries cross-references the registry's managed
// modules against the shared objects actually mapped into this process
// (via /proc/self/maps on Linux) and logs the result. It never mutates
// registry state and is purely diagnostic: a managed module missing
// from the map, or an unmanaged .so present in it, is logged and
// nothing more.
func (r *Registry) ScanRuntimeSharedLibraries() {
	mapped, err := mappedSharedLibraries("/proc/self/maps")
	if err != nil {
		logging.Warn(logComponent, "could not read /proc/self/maps: %v", err)
		return
	}

	r.mu.RLock()
	managed := make(map[string]string, len(r.entries))
	for name, e := range r.entries {
		managed[e.info.Path] = name
	}
	r.mu.RUnlock()

	found := make(map[string]bool, len(managed))
	for _, path := range mapped {
		if name, ok := managed[path]; ok {
			found[path] = true
			logging.Debug(logComponent, "MANAGED %s (module %s)", path, name)
		} else {
			logging.Debug(logComponent, "UNMANAGED %s", path)
		}
	}
	for path, name := range managed {
		if !found[path] {
			logging.Warn(logComponent, "module %s origin %s not found among mapped shared libraries", name, path)
		}
	}
}

func (r *Registry) livenessOf(name string) bool {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	healthy, perr := safeIsHealthy(e.instance)
	if perr != nil {
		logging.Error(logComponent, perr, "IsHealthy() panicked for %s", name)
		return false
	}
	return healthy
}

func resolveFactorySymbols(handle dynlib.Handle) (module.CreateFunc, module.DestroyFunc, error) {
	createSym, err := handle.Symbol(module.CreateSymbol)
	if err != nil {
		return nil, nil, err
	}
	createFn, ok := createSym.(func() module.Instance)
	if !ok {
		return nil, nil, hosterrors.NewSymbolMissing(handle.Path(), module.CreateSymbol,
			fmt.Errorf("symbol has type %T, want func() module.Instance", createSym))
	}

	destroySym, err := handle.Symbol(module.DestroySymbol)
	if err != nil {
		return nil, nil, err
	}
	destroyFn, ok := destroySym.(func(module.Instance))
	if !ok {
		return nil, nil, hosterrors.NewSymbolMissing(handle.Path(), module.DestroySymbol,
			fmt.Errorf("symbol has type %T, want func(module.Instance)", destroySym))
	}

	return module.CreateFunc(createFn), module.DestroyFunc(destroyFn), nil
}

func safeVersion(instance module.Instance) string {
	version := "<unknown>"
	_ = protect("<unknown>", func() { version = instance.Version() })
	return version
}
