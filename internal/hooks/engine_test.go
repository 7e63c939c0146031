package hooks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/igk/kernel/internal/classify"
	"github.com/igk/kernel/internal/intent"
	"github.com/igk/kernel/internal/session"
	"github.com/igk/kernel/internal/trace"
)

// recordingHook is a minimal Hook used to assert ordering and
// blocking-monotonicity without any of the six real hooks' side effects.
type recordingHook struct {
	id     string
	result *Result
	calls  *[]string
}

func (r *recordingHook) ID() string { return r.id }
func (r *recordingHook) PreExecute(ctx *Context) *Result {
	*r.calls = append(*r.calls, r.id)
	return r.result
}

func TestEngineRunsHooksInRegistrationOrder(t *testing.T) {
	var calls []string
	e := NewEngine()
	e.Register(&recordingHook{id: "a", calls: &calls})
	e.Register(&recordingHook{id: "b", calls: &calls})
	e.Register(&recordingHook{id: "c", calls: &calls})

	e.RunPre(&Context{Task: &session.TaskSession{}, Tool: &session.ToolInvocation{}})

	want := "a,b,c"
	if got := strings.Join(calls, ","); got != want {
		t.Errorf("call order = %q, want %q", got, want)
	}
}

func TestEngineBlockingMonotonicity(t *testing.T) {
	var calls []string
	e := NewEngine()
	e.Register(&recordingHook{id: "a", calls: &calls})
	e.Register(&recordingHook{id: "b", calls: &calls, result: blockedMessage("stop here")})
	e.Register(&recordingHook{id: "c", calls: &calls})

	res := e.RunPre(&Context{Task: &session.TaskSession{}, Tool: &session.ToolInvocation{}})
	if res == nil || !res.Blocked {
		t.Fatal("RunPre() should return the blocking Result")
	}
	if got := strings.Join(calls, ","); got != "a,b" {
		t.Errorf("call order = %q, want \"a,b\" (c must not run after b blocks)", got)
	}
}

func TestEngineRegisterReplacesById(t *testing.T) {
	var calls []string
	e := NewEngine()
	e.Register(&recordingHook{id: "a", calls: &calls})
	e.Register(&recordingHook{id: "a", calls: &calls, result: blockedMessage("replaced")})

	res := e.RunPre(&Context{Task: &session.TaskSession{}, Tool: &session.ToolInvocation{}})
	if res == nil || res.Message != "replaced" {
		t.Fatalf("RunPre() = %+v, want the replacement hook's blocking result", res)
	}
	if len(calls) != 1 {
		t.Errorf("calls = %v, want exactly one invocation of id \"a\"", calls)
	}
}

// buildPipeline wires the canonical six hooks in the order spec.md §4.7
// mandates: Gatekeeper, OptimisticLock, ScopeEnforcement, Authorization
// pre-phase; IntentUpdate, TraceWriter post-phase.
func buildPipeline(workspace string, approve ApprovalFunc) *Engine {
	e := NewEngine()
	e.Register(NewGatekeeper())
	e.Register(NewOptimisticLock())
	e.Register(NewScopeEnforcement(workspace))
	e.Register(NewAuthorization(approve))
	e.Register(NewIntentUpdate(workspace))
	e.Register(NewTraceWriter(workspace))
	return e
}

func setupScopedWorkspace(t *testing.T, dir string) {
	t.Helper()
	writeRegistry(t, dir, `active_intents:
  - id: INT-001
    name: Add login flow
    status: IN_PROGRESS
    owned_scope:
      - "src/auth/**"
`)
}

// TestScenarioS1 exercises spec.md's S1: an approved in-scope write on a
// new file produces exactly one trace entry labeled INTENT_EVOLUTION.
func TestScenarioS1(t *testing.T) {
	dir := t.TempDir()
	setupScopedWorkspace(t, dir)

	e := buildPipeline(dir, func(string) ApprovalResponse { return Approved })
	ctx := &Context{
		Workspace: dir,
		Task:      &session.TaskSession{ActiveIntentID: "INT-001"},
		Tool: &session.ToolInvocation{
			Tool:   "write_to_file",
			Params: map[string]string{"path": "src/auth/login.ts", "content": "export function login() {}\n"},
		},
	}

	if res := e.RunPre(ctx); res != nil {
		t.Fatalf("RunPre() = %+v, want nil (all pre-hooks pass)", res)
	}
	e.RunPost(ctx, nil)

	entries, err := trace.NewLedger(dir).ReadAll()
	if err != nil || len(entries) != 1 {
		t.Fatalf("ReadAll() = %v entries, err=%v, want exactly 1", len(entries), err)
	}
	r := entries[0].Files[0].Conversations[0].Ranges[0]
	if r.MutationClass != "INTENT_EVOLUTION" {
		t.Errorf("MutationClass = %q, want INTENT_EVOLUTION", r.MutationClass)
	}
	if entries[0].RelatedIntentIDs()[0] != "INT-001" {
		t.Errorf("related[0].value = %q, want INT-001", entries[0].RelatedIntentIDs()[0])
	}
}

// TestScenarioS2: a write outside owned_scope is blocked with
// SCOPE_VIOLATION naming the path and the allowed pattern.
func TestScenarioS2(t *testing.T) {
	dir := t.TempDir()
	setupScopedWorkspace(t, dir)

	e := buildPipeline(dir, func(string) ApprovalResponse { return Approved })
	ctx := &Context{
		Workspace: dir,
		Task:      &session.TaskSession{ActiveIntentID: "INT-001"},
		Tool: &session.ToolInvocation{
			Tool:   "write_to_file",
			Params: map[string]string{"path": "src/payments/pay.ts", "content": "x"},
		},
	}

	res := e.RunPre(ctx)
	if res == nil || !res.Blocked || res.Rejection.Code != classify.CodeScopeViolation {
		t.Fatalf("RunPre() = %+v, want SCOPE_VIOLATION block", res)
	}
	if !strings.Contains(res.Rejection.Message, "src/payments/pay.ts") {
		t.Errorf("Message %q should name the offending path", res.Rejection.Message)
	}
	if !strings.Contains(res.Rejection.RecoveryHint, "src/auth/**") {
		t.Errorf("RecoveryHint %q should list src/auth/**", res.Rejection.RecoveryHint)
	}
}

// TestScenarioS3: a stale expected_hash is blocked with STALE_FILE, and
// the current hash is surfaced in the recovery hint.
func TestScenarioS3(t *testing.T) {
	dir := t.TempDir()
	setupScopedWorkspace(t, dir)
	writeFile(t, dir, "src/auth/login.ts", "current content")

	e := buildPipeline(dir, func(string) ApprovalResponse { return Approved })
	ctx := &Context{
		Workspace: dir,
		Task:      &session.TaskSession{ActiveIntentID: "INT-001"},
		Tool: &session.ToolInvocation{
			Tool: "write_to_file",
			Params: map[string]string{
				"path":          "src/auth/login.ts",
				"content":       "new content",
				"expected_hash": "sha256:" + strings.Repeat("0", 64),
			},
		},
	}

	res := e.RunPre(ctx)
	if res == nil || !res.Blocked || res.Rejection.Code != classify.CodeStaleFile {
		t.Fatalf("RunPre() = %+v, want STALE_FILE block", res)
	}
	if !strings.Contains(res.Rejection.RecoveryHint, "sha256:") {
		t.Errorf("RecoveryHint %q should contain the current content hash", res.Rejection.RecoveryHint)
	}
}

// TestScenarioS4: an intent on the bypass list skips the approval modal
// entirely.
func TestScenarioS4(t *testing.T) {
	dir := t.TempDir()
	setupScopedWorkspace(t, dir)
	path := filepath.Join(dir, ".orchestration", ".intentignore")
	if err := os.WriteFile(path, []byte("INT-001\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	modalCalled := false
	e := buildPipeline(dir, func(string) ApprovalResponse {
		modalCalled = true
		return Approved
	})
	ctx := &Context{
		Workspace: dir,
		Task:      &session.TaskSession{ActiveIntentID: "INT-001"},
		Tool:      &session.ToolInvocation{Tool: "execute_command", Params: map[string]string{}},
	}

	if res := e.RunPre(ctx); res != nil {
		t.Fatalf("RunPre() = %+v, want nil", res)
	}
	if modalCalled {
		t.Error("modal should not be presented for a bypassed intent")
	}
}

// TestScenarioS5: no active intent blocks a side-effecting tool at the
// Gatekeeper before any file I/O happens.
func TestScenarioS5(t *testing.T) {
	dir := t.TempDir()

	e := buildPipeline(dir, func(string) ApprovalResponse {
		t.Fatal("authorization modal should never run; Gatekeeper must block first")
		return Dismissed
	})
	ctx := &Context{
		Workspace: dir,
		Task:      &session.TaskSession{},
		Tool:      &session.ToolInvocation{Tool: "apply_diff", Params: map[string]string{"path": "x.ts", "content": "y"}},
	}

	res := e.RunPre(ctx)
	if res == nil || !res.Blocked || res.Message == "" {
		t.Fatalf("RunPre() = %+v, want a governance block", res)
	}
	if _, err := os.Stat(filepath.Join(dir, "x.ts")); !os.IsNotExist(err) {
		t.Error("no file should have been written")
	}
}

// TestScenarioS6: selecting the same intent twice only rewrites the
// registry on the first (real) transition.
func TestScenarioS6(t *testing.T) {
	dir := t.TempDir()
	writeRegistry(t, dir, `active_intents:
  - id: INT-001
    name: Add login flow
    status: TODO
`)

	e := buildPipeline(dir, func(string) ApprovalResponse { return Approved })
	ctx := &Context{
		Workspace: dir,
		Task:      &session.TaskSession{ActiveIntentID: "INT-001"},
		Tool:      &session.ToolInvocation{Tool: "select_active_intent"},
	}

	e.RunPost(ctx, nil)
	got, _, _ := intent.NewStore(dir).Find("INT-001")
	if got.Status != intent.StatusInProgress {
		t.Fatalf("Status after first selection = %v, want IN_PROGRESS", got.Status)
	}

	path := filepath.Join(dir, ".orchestration", "active_intents.yaml")
	before, _ := os.ReadFile(path)
	e.RunPost(ctx, nil)
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("re-issuing the same selection should not rewrite the registry")
	}
}
