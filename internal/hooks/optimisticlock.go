package hooks

import (
	"os"
	"path/filepath"

	"github.com/igk/kernel/internal/classify"
	"github.com/igk/kernel/internal/igkhash"
	"github.com/igk/kernel/internal/session"
)

// OptimisticLock implements compare-and-set staleness detection: a write
// that supplies expected_hash only proceeds if the file's current content
// still hashes to that value. It is opt-in — an absent or empty hash
// passes unconditionally, which is the documented "last write wins"
// fallback for first-write scenarios and tools that deliberately reset a
// file.
type OptimisticLock struct{}

// NewOptimisticLock constructs the hook.
func NewOptimisticLock() *OptimisticLock { return &OptimisticLock{} }

// ID identifies this hook for engine registration.
func (o *OptimisticLock) ID() string { return "optimistic_lock" }

// PreExecute validates ctx.Tool's expected_hash, if any, against the
// target file's current content hash.
func (o *OptimisticLock) PreExecute(ctx *Context) *Result {
	if !isWriteTool(ctx.Tool.Tool) {
		return nil
	}

	expected, ok := ctx.Tool.ExpectedHash()
	if !ok || expected == "" {
		return nil
	}

	path, ok := ctx.Tool.Path()
	if !ok {
		return nil
	}
	abs := filepath.Join(ctx.Workspace, path)

	data, err := os.ReadFile(abs)
	if os.IsNotExist(err) {
		return blocked(classify.BuildRejectionError(
			ctx.Tool.Tool,
			classify.CodeStaleFile,
			intentIDOrNil(ctx.Task),
			"expected file \""+path+"\" to exist but it is now missing",
			"",
		))
	}
	if err != nil {
		// Degrade to pass: the lock hook guards against stale content,
		// not against permission problems, and must not become an
		// availability hazard.
		return nil
	}

	current := igkhash.Hash(string(data))
	if current == expected {
		return nil
	}

	return blocked(classify.BuildRejectionError(
		ctx.Tool.Tool,
		classify.CodeStaleFile,
		intentIDOrNil(ctx.Task),
		"file \""+path+"\" has changed since it was last read",
		"re-read the file; its current content hash is "+current,
	))
}

// intentIDOrNil returns the task's active intent id, or the empty string
// if task is nil; BuildRejectionError turns an empty string into a JSON
// null.
func intentIDOrNil(task *session.TaskSession) string {
	if task == nil {
		return ""
	}
	return task.ActiveIntentID
}
