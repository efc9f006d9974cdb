package module

import "testing"

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateConstructed: "constructed",
		StateInited:      "inited",
		StateRunning:      "running",
		StateStopped:      "stopped",
		StateDestroyed:    "destroyed",
		State(99):         "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}

func TestBaseInstanceDependenciesDefaultToEmpty(t *testing.T) {
	var b BaseInstance
	if deps := b.Dependencies(); deps != nil {
		t.Fatalf("expected nil dependencies by default, got %v", deps)
	}
}
