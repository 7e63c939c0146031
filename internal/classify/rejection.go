package classify

import "encoding/json"

// Rejection codes defined by spec.md §6. Hooks may introduce additional
// codes; these three are the ones the kernel itself emits.
const (
	CodeUserRejected   = "USER_REJECTED_INTENT_EVOLUTION"
	CodeScopeViolation = "SCOPE_VIOLATION"
	CodeStaleFile      = "STALE_FILE"
)

// RejectionError is the structured object a blocking hook returns to the
// LLM. It serializes to exactly the shape documented in spec.md §6:
// pretty-printed JSON with two-space indentation, so the rejection reads
// as a self-describing signal the agent can parse and act on.
type RejectionError struct {
	Error        string  `json:"error"`
	Code         string  `json:"code"`
	Tool         string  `json:"tool"`
	IntentID     *string `json:"intent_id"`
	Message      string  `json:"message"`
	RecoveryHint string  `json:"recovery_hint"`
}

// defaultRecoveryHints gives a sensible hint for the kernel's own codes
// when the caller does not supply one.
var defaultRecoveryHints = map[string]string{
	CodeUserRejected:   "Wait for explicit human approval before retrying this tool.",
	CodeScopeViolation: "Restrict the write to a path inside the active intent's owned_scope, or select a different intent.",
	CodeStaleFile:      "Re-read the file to obtain its current content hash, then retry with the updated expected_hash.",
}

// BuildRejectionError constructs a RejectionError, filling recoveryHint with
// a code-appropriate default when the caller passes the empty string.
func BuildRejectionError(tool, code, intentID, message, recoveryHint string) *RejectionError {
	if recoveryHint == "" {
		if hint, ok := defaultRecoveryHints[code]; ok {
			recoveryHint = hint
		} else {
			recoveryHint = "Review the message and adjust the tool call before retrying."
		}
	}

	var id *string
	if intentID != "" {
		id = &intentID
	}

	return &RejectionError{
		Error:        "TOOL_REJECTED",
		Code:         code,
		Tool:         tool,
		IntentID:     id,
		Message:      message,
		RecoveryHint: recoveryHint,
	}
}

// JSON serializes the rejection as indented JSON, matching spec.md §6's
// exact on-wire shape.
func (r *RejectionError) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// String returns the indented JSON form, or a fallback message if
// marshaling somehow fails (it cannot, given RejectionError's fields, but
// Stringer must not panic).
func (r *RejectionError) String() string {
	b, err := r.JSON()
	if err != nil {
		return r.Message
	}
	return string(b)
}
