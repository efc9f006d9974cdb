// Package module defines the contract a plugin must satisfy and the
// identity snapshot the registry hands out to callers.
//
// A plugin built with `go build -buildmode=plugin` must export four
// package-level symbols with exactly these names and signatures:
//
//	func CreateModule() Instance
//	func DestroyModule(Instance)
//	func ModuleType() string
//	func ModuleVersion() int
//
// CreateModule/DestroyModule is the only correct lifecycle for an
// Instance: the host never allocates or frees instance storage itself,
// because the plugin may be linked against a different allocator.
package module

import (
	"context"
	"time"
)

// State enumerates the lifecycle states a module instance is ever
// observed in. An instance only ever progresses left to right through
// this sequence; a failed Init or Start walks it directly back to
// StateDestroyed.
type State int

const (
	StateConstructed State = iota
	StateInited
	StateRunning
	StateStopped
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateInited:
		return "inited"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Instance is the capability set every module must implement. Modules may
// embed BaseInstance to get a default, empty Dependencies().
type Instance interface {
	Init(ctx context.Context) bool
	Start(ctx context.Context) bool
	Stop(ctx context.Context) bool
	Cleanup(ctx context.Context) bool

	Name() string
	Version() string
	IsHealthy() bool

	// Dependencies lists the names of modules this instance expects to be
	// present. The registry records it but never enforces or consults it
	// for load/unload/reload ordering — it is advisory only.
	Dependencies() []string
}

// BaseInstance gives a module a zero-dependency default so it only has to
// implement Dependencies() when it actually has any.
type BaseInstance struct{}

// Dependencies returns no dependencies by default.
func (BaseInstance) Dependencies() []string { return nil }

// CreateFunc and DestroyFunc are the Go-typed views of a plugin's
// CreateModule/DestroyModule exported symbols, resolved by
// internal/dynlib and invoked by internal/registry.
type CreateFunc func() Instance
type DestroyFunc func(Instance)

// Info is a point-in-time, copyable-by-value snapshot of a registered
// module's identity and state. Mutations in the registry after Info is
// returned are never reflected in a previously-returned value.
type Info struct {
	Name         string
	Version      string
	Path         string
	LoadedAt     time.Time
	Running      bool
	Healthy      bool
	Dependencies []string
}

const (
	// CreateSymbol, DestroySymbol, TypeSymbol and VersionSymbol are the
	// exported symbol names of the plugin ABI. The registry resolves
	// CreateSymbol and DestroySymbol via internal/dynlib; TypeSymbol and
	// VersionSymbol are not looked up by the host.
	// Go's plugin ABI only recognizes capitalized, exported identifiers.
	CreateSymbol  = "CreateModule"
	DestroySymbol = "DestroyModule"
	TypeSymbol    = "ModuleType"
	VersionSymbol = "ModuleVersion"
)
