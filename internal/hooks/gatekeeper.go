package hooks

// governanceMessage is the fixed text returned when a side-effecting tool
// fires with no intent selected. It is plain text, not a RejectionError,
// because the agent's recovery path is a constitution-level instruction
// (call select_active_intent) rather than a per-hook machine code.
const governanceMessage = "No active intent selected. Call select_active_intent with one of the " +
	"available intent ids before using any tool that writes, executes, or otherwise produces a " +
	"side effect."

// Gatekeeper is the first pre-hook in the canonical pipeline. It never
// touches the filesystem or the intent registry — it only checks whether
// the task session already has an intent selected — so it is O(1) and
// cannot fail on I/O.
type Gatekeeper struct{}

// NewGatekeeper constructs the hook. It holds no state of its own.
func NewGatekeeper() *Gatekeeper { return &Gatekeeper{} }

// ID identifies this hook for engine registration.
func (g *Gatekeeper) ID() string { return "gatekeeper" }

// PreExecute blocks side-effecting tools until an intent is active.
func (g *Gatekeeper) PreExecute(ctx *Context) *Result {
	if !isSideEffecting(ctx.Tool.Tool) {
		return nil
	}
	if ctx.Task.HasActiveIntent() {
		return nil
	}
	return blockedMessage(governanceMessage)
}
