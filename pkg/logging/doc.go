// Package logging provides the leveled, component-tagged event sink
// consumed by the plugin host core: the DynamicLibrary wrapper, the module
// registry and the health monitor all log through this package rather than
// taking a concrete logger dependency.
//
// # Log levels
//   - Debug: detailed information for development and diagnosis
//   - Info: general informational messages about host operation
//   - Warn: messages that indicate a recoverable problem
//   - Error: a surfaced failure (load/unload/reload error, symbol missing)
//   - Critical: a module or the system has crossed the health monitor's
//     failure threshold
//
// Every call site passes a component tag ("ModuleRegistry",
// "HealthMonitor", "DynamicLibrary", ...) so log lines can be filtered by
// subsystem without a structured query engine:
//
//	logging.Info("ModuleRegistry", "loaded module %s v%s from %s", name, version, path)
//	logging.Error("ModuleRegistry", err, "failed to load %s", path)
//	logging.Critical("HealthMonitor", "module %s is CRITICAL: %s", name, msg)
//
// Output goes through log/slog by default (InitForCLI), with an optional
// bridge to github.com/go-logr/logr for embedders that standardize on the
// logr.Logger interface (LogrSink).
package logging
