package registry

import (
	"context"

	"github.com/pluginhost/pluginhost/internal/hosterrors"
	"github.com/pluginhost/pluginhost/internal/module"
)

// protect recovers a panic raised by f and turns it into a PluginPanic
// HostError attributed to name. Every call that crosses the module
// boundary — constructor, destructor, and every Instance method — runs
// through this so a misbehaving plugin can never bring the host process
// down with it.
func protect(name string, f func()) (perr *hosterrors.HostError) {
	defer func() {
		if r := recover(); r != nil {
			perr = hosterrors.NewPluginPanic(name, r)
		}
	}()
	f()
	return nil
}

func safeCreate(fn module.CreateFunc) (instance module.Instance, perr *hosterrors.HostError) {
	perr = protect("<unconstructed>", func() { instance = fn() })
	return
}

func safeDestroy(fn module.DestroyFunc, instance module.Instance) *hosterrors.HostError {
	return protect(safeName(instance), func() { fn(instance) })
}

func safeInit(ctx context.Context, instance module.Instance) (ok bool, perr *hosterrors.HostError) {
	perr = protect(safeName(instance), func() { ok = instance.Init(ctx) })
	return
}

func safeStart(ctx context.Context, instance module.Instance) (ok bool, perr *hosterrors.HostError) {
	perr = protect(safeName(instance), func() { ok = instance.Start(ctx) })
	return
}

func safeStop(ctx context.Context, instance module.Instance) (ok bool, perr *hosterrors.HostError) {
	perr = protect(safeName(instance), func() { ok = instance.Stop(ctx) })
	return
}

func safeCleanup(ctx context.Context, instance module.Instance) (ok bool, perr *hosterrors.HostError) {
	perr = protect(safeName(instance), func() { ok = instance.Cleanup(ctx) })
	return
}

func safeIsHealthy(instance module.Instance) (healthy bool, perr *hosterrors.HostError) {
	perr = protect(safeName(instance), func() { healthy = instance.IsHealthy() })
	return
}

func safeDependencies(instance module.Instance) (deps []string, perr *hosterrors.HostError) {
	perr = protect(safeName(instance), func() { deps = instance.Dependencies() })
	return
}

// safeName reads instance.Name() defensively: it is called from inside
// other protect() calls (to label a panic), so it must never itself
// panic into an un-recovered frame.
func safeName(instance module.Instance) string {
	if instance == nil {
		return "<nil>"
	}
	name := "<unknown>"
	_ = protect("<unknown>", func() { name = instance.Name() })
	return name
}
