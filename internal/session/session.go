// Package session defines the per-conversation state the Hook Engine
// consumes on every tool call: the TaskSession carried by the host driver
// and the ToolInvocation parsed from the agent's tool call.
package session

// Contributor identifies the entity responsible for a mutation, carried
// through to the trace ledger's provenance records.
type Contributor struct {
	EntityType      string `json:"entity_type"`
	ModelIdentifier string `json:"model_identifier"`
}

// TaskSession is the per-conversation scope threaded through every hook
// call. Once ActiveIntentID is set, only an explicit re-selection
// (select_active_intent) may change it.
type TaskSession struct {
	TaskID          string
	ActiveIntentID  string
	Contributor     Contributor
	MutationCount   int
	VCSRevisionID   string
}

// SetActiveIntent records a (re-)selection of the active intent.
func (s *TaskSession) SetActiveIntent(intentID string) {
	s.ActiveIntentID = intentID
}

// HasActiveIntent reports whether an intent is currently selected.
func (s *TaskSession) HasActiveIntent() bool {
	return s.ActiveIntentID != ""
}

// ToolInvocation is a tool call parsed by the driver and handed to the
// Hook Engine. Params holds the raw parameter mapping the driver decoded;
// NativeArgs, when non-nil, is the typed view that takes precedence over
// Params for fields both carry (expected_hash, path, intent_id, ...).
type ToolInvocation struct {
	ID         string
	Tool       string
	Params     map[string]string
	NativeArgs map[string]string
}

// Get reads a field, preferring NativeArgs over Params, per spec.md §3's
// "typed native_args view (preferred source of truth when present)".
func (t *ToolInvocation) Get(key string) (string, bool) {
	if t.NativeArgs != nil {
		if v, ok := t.NativeArgs[key]; ok {
			return v, true
		}
	}
	if t.Params != nil {
		if v, ok := t.Params[key]; ok {
			return v, true
		}
	}
	return "", false
}

// Path returns the target file path, checking both accepted field names
// ("path" then "file_path").
func (t *ToolInvocation) Path() (string, bool) {
	if v, ok := t.Get("path"); ok && v != "" {
		return v, true
	}
	if v, ok := t.Get("file_path"); ok && v != "" {
		return v, true
	}
	return "", false
}

// ExpectedHash returns the caller-supplied expected_hash, if any.
func (t *ToolInvocation) ExpectedHash() (string, bool) {
	return t.Get("expected_hash")
}

// ExplicitIntentID returns an intent_id carried directly on the call,
// distinct from the session's active intent (used by the Trace Writer to
// add a "requirement" related entry).
func (t *ToolInvocation) ExplicitIntentID() (string, bool) {
	v, ok := t.Get("intent_id")
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// ExplicitMutationClass returns a caller-supplied mutation_class override.
func (t *ToolInvocation) ExplicitMutationClass() (string, bool) {
	return t.Get("mutation_class")
}

// MutationContent extracts the content to hash/classify for a write tool:
// a full-file write's new content, or a diff/patch/replace payload. It
// checks, in order, the fields a write call might carry.
func (t *ToolInvocation) MutationContent() (string, bool) {
	for _, key := range []string{"content", "diff", "new_string", "patch"} {
		if v, ok := t.Get(key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// WithBlock returns a shallow copy of the invocation with Params replaced,
// used by the Hook Engine to implement transformed-block semantics without
// mutating the original invocation.
func (t *ToolInvocation) WithBlock(params map[string]string) *ToolInvocation {
	clone := *t
	clone.Params = params
	return &clone
}
