package registry

import "time"

// HealthRecorder is the slice of internal/health's Monitor that the
// registry depends on. Defining the interface here, at the consumer,
// keeps the registry from importing the monitor's tick/report machinery
// just to record load events and register a liveness predicate.
type HealthRecorder interface {
	// Register installs predicate as the liveness check for name. The
	// monitor invokes predicate on its own schedule, never synchronously
	// from Register.
	Register(name string, predicate func() bool)
	// Unregister removes name's liveness check. The registry calls this
	// before running any module teardown code, so the monitor can never
	// invoke a predicate for a module that is already being destroyed.
	Unregister(name string)

	RecordLoad(name string, loadTime time.Duration)
	RecordUnload(name string)
	RecordHotSwap(name string, success bool)
}

// noopRecorder satisfies HealthRecorder for registries built without a
// monitor (diagnostic tooling, one-shot load/unload scenarios in tests).
type noopRecorder struct{}

func (noopRecorder) Register(string, func() bool)     {}
func (noopRecorder) Unregister(string)                {}
func (noopRecorder) RecordLoad(string, time.Duration) {}
func (noopRecorder) RecordUnload(string)              {}
func (noopRecorder) RecordHotSwap(string, bool)       {}
