package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pluginhost/pluginhost/internal/config"
	"github.com/pluginhost/pluginhost/internal/dynlib"
	"github.com/pluginhost/pluginhost/internal/health"
	"github.com/pluginhost/pluginhost/internal/module"
	"github.com/pluginhost/pluginhost/internal/registry"
)

type stubInstance struct {
	module.BaseInstance
	name, version string
}

func (s *stubInstance) Init(context.Context) bool    { return true }
func (s *stubInstance) Start(context.Context) bool   { return true }
func (s *stubInstance) Stop(context.Context) bool    { return true }
func (s *stubInstance) Cleanup(context.Context) bool { return true }
func (s *stubInstance) Name() string                 { return s.name }
func (s *stubInstance) Version() string              { return s.version }
func (s *stubInstance) IsHealthy() bool              { return true }

func TestStatusTableWithNoModulesLoaded(t *testing.T) {
	h := NewHost(config.Default())
	out := h.StatusTable()
	if !strings.Contains(out, "no modules loaded") {
		t.Fatalf("expected empty-state message, got %s", out)
	}
	if !strings.Contains(out, "System health") {
		t.Fatalf("expected system health line, got %s", out)
	}
}

func TestLoadThenStatusTableShowsModule(t *testing.T) {
	opener := dynlib.NewFakeOpener()
	opener.AddPlugin("./calc.so", map[string]any{
		module.CreateSymbol:  func() module.Instance { return &stubInstance{name: "Calculator", version: "1.0.0"} },
		module.DestroySymbol: func(module.Instance) {},
	})

	cfg := config.Default()
	mon := health.New(time.Duration(cfg.Health.CheckInterval), cfg.Health.FailureThreshold)
	h := &Host{Config: cfg, Registry: registry.New(opener, mon), Monitor: mon}

	if _, err := h.Load(context.Background(), "./calc.so"); err != nil {
		t.Fatalf("load: %v", err)
	}

	out := h.StatusTable()
	if !strings.Contains(out, "Calculator") || !strings.Contains(out, "1.0.0") {
		t.Fatalf("expected Calculator v1.0.0 in table, got %s", out)
	}
}
