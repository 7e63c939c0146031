// Package hooks documents and implements the kernel's threat model: the
// reasons each of the six policy/observability hooks exists and what it
// is, and is not, responsible for stopping.
//
// # Threat Model
//
// T1 - Unauthorized side effects: an agent driver wired to write/exec
// tools has no inherent concept of "what it is allowed to touch right
// now." Gatekeeper closes this by refusing any side-effecting tool until
// a human-declared intent has been selected for the task.
//
// T2 - Scope creep: an agent working a narrowly-scoped intent (e.g. "fix
// the login form") can wander into unrelated files — intentionally,
// through confusion, or through a prompt injection embedded in retrieved
// content. ScopeEnforcement confines writes to the active intent's
// owned_scope globs.
//
// T3 - Silent overwrite races: two agents, or an agent and a human,
// editing the same file without coordination can clobber each other's
// work. OptimisticLock makes this detectable (not prevented — the kernel
// has no lock manager) by requiring a content-hash compare-and-set on
// writes that opt in to it.
//
// T4 - Unreviewed destructive actions: shell execution, MCP tool
// invocation, and similar high-blast-radius calls should not run
// unattended by default. Authorization gates every DESTRUCTIVE tool
// behind either a standing bypass list or an interactive approval.
//
// T5 - Provenance loss: once a mutation lands, there is no way to later
// ask "why does this code exist" unless something recorded it at the
// time. TraceWriter appends a hash-anchored provenance entry for every
// successful write.
//
// T6 - Stale intent state: an intent left in TODO after work has
// actually started (or never marked COMPLETED) misleads anyone reading
// the registry. IntentUpdate keeps status synchronized with the
// session's own selection/completion signals, idempotently.
//
// # Design Principles
//
// Fail open on observability, fail closed on policy: OptimisticLock,
// ScopeEnforcement, and Authorization block the call when their
// invariant is violated; IntentUpdate and TraceWriter only ever log a
// failure and let the call's outcome stand, since losing a trace entry
// is recoverable and blocking a successful edit on its account is not.
//
// Cheap checks first: the canonical registration order runs Gatekeeper
// (no I/O) before OptimisticLock and ScopeEnforcement (local filesystem
// reads) before Authorization (may suspend on a human response), so the
// most common rejections resolve without touching disk or a human.
//
// No locks across suspension points: every hook that reads the
// filesystem or awaits a human decision does so without holding any
// lock, consistent with the kernel's optimistic-CAS concurrency model —
// see [TraceWriter] and [OptimisticLock] for the two places state is
// actually written.
package hooks
