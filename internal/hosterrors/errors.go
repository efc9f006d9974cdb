// Package hosterrors defines the error taxonomy the module registry
// surfaces to its callers. Every failure path returns a *HostError whose
// Kind field names its category, so a caller can dispatch with a single
// errors.As, or with the Is... helpers, rather than matching messages.
package hosterrors

import (
	"errors"
	"fmt"
)

// Kind identifies one of the registry's error categories.
type Kind string

const (
	KindLoaderError   Kind = "loader_error"
	KindSymbolMissing Kind = "symbol_missing"
	KindInitFailed    Kind = "init_failed"
	KindStartFailed   Kind = "start_failed"
	KindNameCollision Kind = "name_collision"
	KindNotFound      Kind = "not_found"
	KindPluginPanic   Kind = "plugin_panic"
)

// HostError is the concrete type behind every error kind below. Callers
// that need the kind programmatically should use errors.As(err,
// *HostError) or one of the Is... helpers.
type HostError struct {
	Kind    Kind
	Message string
	// Cause is the underlying error, if any (the OS loader's diagnostic
	// string for LoaderError, the panic value for PluginPanic, etc).
	Cause error
}

func (e *HostError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *HostError) Unwrap() error { return e.Cause }

func newError(kind Kind, cause error, messageFmt string, args ...any) *HostError {
	return &HostError{
		Kind:    kind,
		Message: fmt.Sprintf(messageFmt, args...),
		Cause:   cause,
	}
}

// NewLoaderError wraps the OS loader's rejection of a plugin path. The
// diagnostic string from the underlying plugin.Open error is carried
// verbatim as Cause.
func NewLoaderError(path string, cause error) *HostError {
	return newError(KindLoaderError, cause, "failed to open plugin at %q", path)
}

// NewSymbolMissing reports a required factory or module symbol absent
// from an opened plugin.
func NewSymbolMissing(path, symbol string, cause error) *HostError {
	return newError(KindSymbolMissing, cause, "symbol %q not found in plugin at %q", symbol, path)
}

// NewInitFailed reports Init() returning false for a module instance.
func NewInitFailed(name string) *HostError {
	return newError(KindInitFailed, nil, "module %q failed to initialize", name)
}

// NewStartFailed reports Start() returning false for a module instance.
func NewStartFailed(name string) *HostError {
	return newError(KindStartFailed, nil, "module %q failed to start", name)
}

// NewNameCollision reports an attempt to load a module under a name
// already present in the registry.
func NewNameCollision(name string) *HostError {
	return newError(KindNameCollision, nil, "module %q is already registered", name)
}

// NewNotFound reports an operation targeting an unknown module name.
func NewNotFound(name string) *HostError {
	return newError(KindNotFound, nil, "module %q is not registered", name)
}

// NewPluginPanic wraps a recovered panic raised by plugin code across the
// module boundary.
func NewPluginPanic(name string, recovered any) *HostError {
	return newError(KindPluginPanic, fmt.Errorf("%v", recovered), "module %q panicked", name)
}

func isKind(err error, kind Kind) bool {
	var he *HostError
	if !errors.As(err, &he) {
		return false
	}
	return he.Kind == kind
}

func IsLoaderError(err error) bool   { return isKind(err, KindLoaderError) }
func IsSymbolMissing(err error) bool { return isKind(err, KindSymbolMissing) }
func IsInitFailed(err error) bool    { return isKind(err, KindInitFailed) }
func IsStartFailed(err error) bool   { return isKind(err, KindStartFailed) }
func IsNameCollision(err error) bool { return isKind(err, KindNameCollision) }
func IsNotFound(err error) bool      { return isKind(err, KindNotFound) }
func IsPluginPanic(err error) bool   { return isKind(err, KindPluginPanic) }
