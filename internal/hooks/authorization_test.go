package hooks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/igk/kernel/internal/classify"
	"github.com/igk/kernel/internal/session"
)

func TestAuthorizationBypassSkipsModal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".orchestration", ".intentignore")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("# comment\nINT-001\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	modalCalled := false
	a := NewAuthorization(func(string) ApprovalResponse {
		modalCalled = true
		return Approved
	})

	ctx := &Context{
		Workspace: dir,
		Task:      &session.TaskSession{ActiveIntentID: "INT-001"},
		Tool:      &session.ToolInvocation{Tool: "execute_command"},
	}
	if res := a.PreExecute(ctx); res != nil {
		t.Errorf("PreExecute() = %+v, want nil for a bypassed intent", res)
	}
	if modalCalled {
		t.Error("modal should not be presented when the intent is in the bypass list")
	}
}

func TestAuthorizationModalApprove(t *testing.T) {
	dir := t.TempDir()
	a := NewAuthorization(func(string) ApprovalResponse { return Approved })

	ctx := &Context{
		Workspace: dir,
		Task:      &session.TaskSession{ActiveIntentID: "INT-002"},
		Tool:      &session.ToolInvocation{Tool: "execute_command"},
	}
	if res := a.PreExecute(ctx); res != nil {
		t.Errorf("PreExecute() = %+v, want nil on Approve", res)
	}
}

func TestAuthorizationModalRejectOrDismiss(t *testing.T) {
	for _, resp := range []ApprovalResponse{Rejected, Dismissed} {
		a := NewAuthorization(func(string) ApprovalResponse { return resp })
		ctx := &Context{
			Workspace: t.TempDir(),
			Task:      &session.TaskSession{ActiveIntentID: "INT-002"},
			Tool:      &session.ToolInvocation{Tool: "execute_command"},
		}
		res := a.PreExecute(ctx)
		if res == nil || !res.Blocked {
			t.Fatalf("PreExecute() with response %v should block", resp)
		}
		if res.Rejection.Code != classify.CodeUserRejected {
			t.Errorf("Code = %q, want %q", res.Rejection.Code, classify.CodeUserRejected)
		}
	}
}

func TestAuthorizationIgnoresNonDestructiveTools(t *testing.T) {
	a := NewAuthorization(func(string) ApprovalResponse {
		t.Fatal("modal should not be called for a SAFE tool")
		return Dismissed
	})
	ctx := &Context{
		Workspace: t.TempDir(),
		Task:      &session.TaskSession{ActiveIntentID: "INT-002"},
		Tool:      &session.ToolInvocation{Tool: "read_file"},
	}
	if res := a.PreExecute(ctx); res != nil {
		t.Errorf("PreExecute() = %+v, want nil for a SAFE tool", res)
	}
}

func TestAuthorizationInvalidateForcesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".orchestration", ".intentignore")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	a := NewAuthorization(func(string) ApprovalResponse { return Rejected })
	ctx := &Context{Workspace: dir, Task: &session.TaskSession{ActiveIntentID: "INT-001"}, Tool: &session.ToolInvocation{Tool: "execute_command"}}
	if res := a.PreExecute(ctx); res == nil || !res.Blocked {
		t.Fatal("expected a block before INT-001 is added to the bypass list")
	}

	if err := os.WriteFile(path, []byte("INT-001\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a.Invalidate()

	if res := a.PreExecute(ctx); res != nil {
		t.Errorf("PreExecute() = %+v, want nil after Invalidate picks up the new bypass list", res)
	}
}
