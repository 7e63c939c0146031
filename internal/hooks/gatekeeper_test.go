package hooks

import (
	"testing"

	"github.com/igk/kernel/internal/session"
)

func TestGatekeeperBlocksWithoutIntent(t *testing.T) {
	g := NewGatekeeper()
	ctx := &Context{
		Task: &session.TaskSession{},
		Tool: &session.ToolInvocation{Tool: "apply_diff"},
	}
	res := g.PreExecute(ctx)
	if res == nil || !res.Blocked {
		t.Fatal("PreExecute() should block a side-effecting tool with no active intent")
	}
	if res.Message == "" {
		t.Error("blocked Result should carry a governance message")
	}
}

func TestGatekeeperPassesWithIntent(t *testing.T) {
	g := NewGatekeeper()
	ctx := &Context{
		Task: &session.TaskSession{ActiveIntentID: "INT-001"},
		Tool: &session.ToolInvocation{Tool: "apply_diff"},
	}
	if res := g.PreExecute(ctx); res != nil {
		t.Errorf("PreExecute() = %+v, want nil with an active intent", res)
	}
}

func TestGatekeeperIgnoresSafeTools(t *testing.T) {
	g := NewGatekeeper()
	ctx := &Context{
		Task: &session.TaskSession{},
		Tool: &session.ToolInvocation{Tool: "read_file"},
	}
	if res := g.PreExecute(ctx); res != nil {
		t.Errorf("PreExecute() = %+v, want nil for a non-side-effecting tool", res)
	}
}
