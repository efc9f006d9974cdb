// Package cli holds the thin facade cmd/pluginhostctl's subcommands
// drive: a Host bundling the registry, the health monitor, and the
// loaded configuration behind the handful of operations a command-line
// tool needs (load, unload, reload, status, scan).
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pluginhost/pluginhost/internal/config"
	"github.com/pluginhost/pluginhost/internal/dynlib"
	"github.com/pluginhost/pluginhost/internal/health"
	"github.com/pluginhost/pluginhost/internal/module"
	"github.com/pluginhost/pluginhost/internal/registry"
	pathfmt "github.com/pluginhost/pluginhost/pkg/strings"
)

// statusTablePathMaxLen bounds the PATH column so a long plugin path
// can't blow out the table's width.
const statusTablePathMaxLen = 40

// Host bundles everything one pluginhostctl invocation needs: a
// registry, the health monitor feeding it, and the configuration both
// were built from.
type Host struct {
	Config   config.HostConfig
	Registry *registry.Registry
	Monitor  *health.Monitor
}

// NewHost builds a Host from cfg, wiring the registry to open plugins
// through dynlib.Default and report into a freshly constructed monitor.
func NewHost(cfg config.HostConfig) *Host {
	mon := health.New(time.Duration(cfg.Health.CheckInterval), cfg.Health.FailureThreshold)
	reg := registry.New(dynlib.Default, mon)
	mon.SetRuntimeScanHook(reg.ScanRuntimeSharedLibraries, 5*time.Second)
	return &Host{
		Config:   cfg,
		Registry: reg,
		Monitor:  mon,
	}
}

// StatusTable renders a go-pretty table summarizing every loaded module
// and its current health, the CLI's "status" output.
func (h *Host) StatusTable() string {
	names := h.Registry.AllNames()

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("VERSION"),
		text.FgHiCyan.Sprint("RUNNING"),
		text.FgHiCyan.Sprint("HEALTH"),
		text.FgHiCyan.Sprint("FAILURES"),
		text.FgHiCyan.Sprint("PATH"),
	})

	if len(names) == 0 {
		t.AppendRow(table.Row{text.Faint.Sprint("(no modules loaded)"), "", "", "", "", ""})
	}

	for _, name := range names {
		info, _ := h.Registry.Info(name)
		rec, _ := h.Monitor.ModuleHealth(name)
		t.AppendRow(table.Row{
			name,
			info.Version,
			formatBool(info.Running),
			formatHealth(rec.Status),
			rec.ConsecutiveFailures,
			pathfmt.TruncateDescription(info.Path, statusTablePathMaxLen),
		})
	}

	var out strings.Builder
	t.SetOutputMirror(&out)
	t.Render()
	fmt.Fprintf(&out, "\nSystem health: %s\n", formatHealth(h.Monitor.SystemHealth()))
	return out.String()
}

func formatBool(b bool) string {
	if b {
		return text.FgHiGreen.Sprint("yes")
	}
	return text.FgHiRed.Sprint("no")
}

func formatHealth(s health.Status) string {
	switch s {
	case health.StatusHealthy:
		return text.FgHiGreen.Sprint(s.String())
	case health.StatusDegraded, health.StatusUnhealthy:
		return text.FgHiYellow.Sprint(s.String())
	case health.StatusCritical:
		return text.FgHiRed.Sprint(s.String())
	default:
		return text.Faint.Sprint(s.String())
	}
}

// Load loads path into the registry. It does not start the monitoring
// loop; callers start it with Monitor.StartMonitoring.
func (h *Host) Load(ctx context.Context, path string) (module.Info, error) {
	return h.Registry.Load(ctx, path)
}

// Unload tears down name.
func (h *Host) Unload(ctx context.Context, name string) error {
	return h.Registry.Unload(ctx, name)
}

// Reload hot-swaps name.
func (h *Host) Reload(ctx context.Context, name string) (module.Info, error) {
	return h.Registry.Reload(ctx, name)
}

// Shutdown tears down every loaded module and stops the monitor.
func (h *Host) Shutdown(ctx context.Context) error {
	h.Monitor.StopMonitoring()
	return h.Registry.Shutdown(ctx)
}
