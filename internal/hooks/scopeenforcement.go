package hooks

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/igk/kernel/internal/classify"
	"github.com/igk/kernel/internal/intent"
	"github.com/igk/kernel/internal/scope"
)

// ScopeEnforcement rejects writes outside the active intent's
// owned_scope. It reads the intent registry on every call rather than
// caching it, since the registry is small and rewritten rarely relative
// to tool-call frequency; correctness matters more than shaving a read.
type ScopeEnforcement struct {
	Store *intent.Store
}

// NewScopeEnforcement constructs the hook against the registry located
// under workspaceRoot.
func NewScopeEnforcement(workspaceRoot string) *ScopeEnforcement {
	return &ScopeEnforcement{Store: intent.NewStore(workspaceRoot)}
}

// ID identifies this hook for engine registration.
func (s *ScopeEnforcement) ID() string { return "scope_enforcement" }

// PreExecute blocks a write tool whose target path falls outside every
// pattern in the active intent's owned_scope.
func (s *ScopeEnforcement) PreExecute(ctx *Context) *Result {
	if !isWriteTool(ctx.Tool.Tool) {
		return nil
	}
	if !ctx.Task.HasActiveIntent() {
		return nil
	}

	rawPath, ok := ctx.Tool.Path()
	if !ok {
		return nil
	}
	relPath := filepath.ToSlash(rawPath)

	in, found, err := s.Store.Find(ctx.Task.ActiveIntentID)
	if err != nil || !found {
		// Cannot enforce a scope we cannot read.
		return nil
	}
	if len(in.OwnedScope) == 0 {
		return nil
	}
	if scope.AnyMatch(relPath, in.OwnedScope) {
		return nil
	}

	hint := fmt.Sprintf("allowed patterns for %s: %s", ctx.Task.ActiveIntentID, strings.Join(in.OwnedScope, ", "))
	return blocked(classify.BuildRejectionError(
		ctx.Tool.Tool,
		classify.CodeScopeViolation,
		ctx.Task.ActiveIntentID,
		fmt.Sprintf("%q is outside the active intent's owned scope", relPath),
		hint,
	))
}
