package registry

import (
	"github.com/pluginhost/pluginhost/internal/dynlib"
	"github.com/pluginhost/pluginhost/internal/module"
)

// entry is the registry's record of one loaded module. It exclusively
// owns handle and instance: handle's lifetime must strictly contain
// instance's lifetime, so every teardown path destroys instance before
// releasing handle.
//
// An entry is only ever reachable through r.entries while it is live;
// Unload removes it from the map under r.mu before running any
// teardown, so two goroutines can never both hold a live reference to
// the same entry and race to tear it down.
type entry struct {
	handle   dynlib.Handle
	instance module.Instance
	destroy  module.DestroyFunc
	info     module.Info
}
