package hooks

// sideEffectingTools gates the Gatekeeper Hook: any tool capable of
// mutating the filesystem, running a command, or otherwise producing an
// effect outside the conversation requires a selected intent first.
var sideEffectingTools = map[string]bool{
	"write_to_file":    true,
	"apply_diff":       true,
	"execute_command":  true,
	"insert_content":   true,
	"search_and_replace": true,
	"browser_action":  true,
	"use_mcp_tool":    true,
	"switch_mode":     true,
	"new_task":        true,
}

// writeTools is the narrower set OptimisticLock, ScopeEnforcement, and
// TraceWriter apply to: tools that write file content at a path, as
// opposed to command execution or mode/task control.
var writeTools = map[string]bool{
	"write_to_file":     true,
	"apply_diff":        true,
	"edit":              true,
	"search_and_replace": true,
	"search_replace":    true,
	"edit_file":         true,
	"apply_patch":       true,
	"insert_content":    true,
}

func isSideEffecting(tool string) bool { return sideEffectingTools[tool] }

func isWriteTool(tool string) bool { return writeTools[tool] }
