package hooks

import (
	"log"

	"github.com/igk/kernel/internal/intent"
)

// IntentUpdate is a post-phase hook that advances intent status in
// reaction to two tool calls: selecting an intent moves it to
// IN_PROGRESS, completing the task moves it to COMPLETED. It never
// regresses a status and is a no-op for an unknown intent id.
type IntentUpdate struct {
	Store *intent.Store
}

// NewIntentUpdate constructs the hook against the registry located under
// workspaceRoot.
func NewIntentUpdate(workspaceRoot string) *IntentUpdate {
	return &IntentUpdate{Store: intent.NewStore(workspaceRoot)}
}

// ID identifies this hook for engine registration.
func (h *IntentUpdate) ID() string { return "intent_update" }

// PreExecute is a no-op; IntentUpdate only participates in the post
// phase.
func (h *IntentUpdate) PreExecute(ctx *Context) *Result { return nil }

// PostExecute transitions the active intent's status for
// select_active_intent and attempt_completion calls. Failures are logged,
// never propagated, matching the observability-hook error policy.
func (h *IntentUpdate) PostExecute(ctx *Context, toolErr error) {
	if toolErr != nil {
		return
	}

	var newStatus intent.Status
	switch ctx.Tool.Tool {
	case "select_active_intent":
		newStatus = intent.StatusInProgress
	case "attempt_completion":
		newStatus = intent.StatusCompleted
	default:
		return
	}

	if !ctx.Task.HasActiveIntent() {
		return
	}

	if _, err := h.Store.SetStatus(ctx.Task.ActiveIntentID, newStatus); err != nil {
		log.Printf("igk: intent update failed for %s: %v", ctx.Task.ActiveIntentID, err)
	}
}
