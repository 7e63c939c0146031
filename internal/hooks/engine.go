package hooks

import (
	"log"
	"sync"

	"github.com/igk/kernel/internal/classify"
	"github.com/igk/kernel/internal/session"
)

// Context is threaded through a single tool call's pre and post phases.
// Tool starts as the invocation the driver parsed and may be replaced, in
// place, by a pre-hook's transformed block before the next hook sees it.
type Context struct {
	Workspace string
	Task      *session.TaskSession
	Tool      *session.ToolInvocation
}

// Result is what a pre-hook returns for one invocation of run_pre.
// A nil Result (returned by a Hook's PreExecute) means "pass": the next
// hook runs unchanged.
type Result struct {
	// Blocked, when true, halts the pipeline; Message and/or Rejection
	// describe why. Gatekeeper uses a plain Message; the policy hooks
	// (OptimisticLock, ScopeEnforcement, Authorization) use Rejection.
	Blocked   bool
	Message   string
	Rejection *classify.RejectionError

	// Transformed, when non-nil, replaces ctx.Tool for every hook run
	// after this one (and for the eventual tool execution).
	Transformed *session.ToolInvocation
}

// blocked is a convenience constructor for a halting Result carrying a
// structured rejection payload.
func blocked(r *classify.RejectionError) *Result {
	return &Result{Blocked: true, Rejection: r}
}

// blockedMessage is a convenience constructor for a halting Result
// carrying a plain governance message instead of a RejectionError.
func blockedMessage(msg string) *Result {
	return &Result{Blocked: true, Message: msg}
}

// Hook is the pre-phase contract every pipeline stage implements. ID
// identifies the hook for registration/replacement; PreExecute runs
// during run_pre and returns nil to pass the invocation through
// unchanged.
type Hook interface {
	ID() string
	PreExecute(ctx *Context) *Result
}

// PostHook is the optional post-phase contract. A hook that only needs
// pre-phase behavior does not implement it; the engine checks for it with
// a type assertion. toolErr is the error (if any) the tool execution
// itself returned; post-hooks observe it but never change the outcome.
type PostHook interface {
	PostExecute(ctx *Context, toolErr error)
}

// Engine maintains an ordered sequence of hooks identified by id.
// Registering a hook that shares an id already present replaces it in
// place, leaving its position in the pipeline unchanged — this makes
// register idempotent under repeated initialization.
type Engine struct {
	mu    sync.Mutex
	order []string
	hooks map[string]Hook
}

// NewEngine returns an empty engine. Callers register hooks in the order
// they should run; the canonical pipeline is Gatekeeper, OptimisticLock,
// ScopeEnforcement, Authorization for pre-phase, with IntentUpdate and
// TraceWriter additionally answering to the post-phase.
func NewEngine() *Engine {
	return &Engine{hooks: make(map[string]Hook)}
}

// Register adds hook to the pipeline, or replaces the existing hook
// sharing its id without moving its position.
func (e *Engine) Register(h Hook) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := h.ID()
	if _, exists := e.hooks[id]; !exists {
		e.order = append(e.order, id)
	}
	e.hooks[id] = h
}

// RunPre iterates registered hooks in registration order. The first hook
// to return a blocking Result halts iteration immediately; its Result is
// returned. A hook that returns a Transformed invocation causes every
// subsequent hook (and the tool itself) to see that replacement. A nil
// return overall means every hook passed.
func (e *Engine) RunPre(ctx *Context) *Result {
	e.mu.Lock()
	order := append([]string(nil), e.order...)
	hooks := make(map[string]Hook, len(e.hooks))
	for k, v := range e.hooks {
		hooks[k] = v
	}
	e.mu.Unlock()

	for _, id := range order {
		h := hooks[id]
		res := h.PreExecute(ctx)
		if res == nil {
			continue
		}
		if res.Blocked {
			return res
		}
		if res.Transformed != nil {
			ctx.Tool = res.Transformed
		}
	}
	return nil
}

// RunPost invokes every hook implementing PostHook, in registration
// order. Each post-hook is independent: a panic recovered from one is
// logged and does not prevent the others from running, matching the
// "post-hook errors never change the outcome" propagation policy.
func (e *Engine) RunPost(ctx *Context, toolErr error) {
	e.mu.Lock()
	order := append([]string(nil), e.order...)
	hooks := make(map[string]Hook, len(e.hooks))
	for k, v := range e.hooks {
		hooks[k] = v
	}
	e.mu.Unlock()

	for _, id := range order {
		h, ok := hooks[id].(PostHook)
		if !ok {
			continue
		}
		runPostSafely(h, ctx, toolErr)
	}
}

func runPostSafely(h PostHook, ctx *Context, toolErr error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("igk: post-hook panic recovered: %v", r)
		}
	}()
	h.PostExecute(ctx, toolErr)
}
