package hooks

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/igk/kernel/internal/classify"
	"github.com/igk/kernel/internal/session"
)

// ApprovalResponse is what the host UI's modal returns.
type ApprovalResponse int

const (
	Dismissed ApprovalResponse = iota
	Approved
	Rejected
)

// ApprovalFunc presents message to a human and returns their response.
// The Authorization Hook treats anything other than Approved as a
// rejection, including dismissal.
type ApprovalFunc func(message string) ApprovalResponse

// bypassListRelPath is the bypass list's location relative to the
// workspace root.
const bypassListRelPath = ".orchestration/.intentignore"

// Authorization gates DESTRUCTIVE tools behind either a bypass-list
// membership check or an interactive approval. The bypass set is a
// single-slot memoized cache keyed by workspace path, per spec.md §9 —
// there is no cross-task sharing requirement under the single-threaded-
// per-task scheduling model, so a mutex is enough to make explicit
// invalidation safe.
type Authorization struct {
	Approve ApprovalFunc

	mu          sync.Mutex
	cachedPath  string
	cachedSet   map[string]bool
	cacheLoaded bool
}

// NewAuthorization constructs the hook with the given modal-approval
// callback.
func NewAuthorization(approve ApprovalFunc) *Authorization {
	return &Authorization{Approve: approve}
}

// ID identifies this hook for engine registration.
func (a *Authorization) ID() string { return "authorization" }

// Invalidate clears the cached bypass set, forcing the next PreExecute to
// re-read .intentignore from disk.
func (a *Authorization) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cacheLoaded = false
	a.cachedSet = nil
	a.cachedPath = ""
}

// PreExecute checks the bypass list for DESTRUCTIVE tools and, failing
// that, presents an approval modal.
func (a *Authorization) PreExecute(ctx *Context) *Result {
	if classify.Classify(ctx.Tool.Tool) != classify.Destructive {
		return nil
	}

	bypass := a.bypassSet(ctx.Workspace)
	if bypass[ctx.Task.ActiveIntentID] {
		return nil
	}

	switch a.Approve(humanLabel(ctx.Tool)) {
	case Approved:
		return nil
	default:
		return blocked(classify.BuildRejectionError(
			ctx.Tool.Tool,
			classify.CodeUserRejected,
			ctx.Task.ActiveIntentID,
			"the human reviewer did not approve this call",
			"",
		))
	}
}

// humanLabel builds the modal's human-readable prompt: the tool name
// with underscores replaced by spaces, plus a target-path hint when one
// is available.
func humanLabel(tool *session.ToolInvocation) string {
	label := strings.ReplaceAll(tool.Tool, "_", " ")
	if path, ok := tool.Path(); ok {
		return label + ": " + path
	}
	return label
}

// bypassSet returns the memoized bypass set for workspace, loading it
// from .intentignore on first use or after Invalidate, and whenever
// workspace differs from the cached path.
func (a *Authorization) bypassSet(workspace string) map[string]bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cacheLoaded && a.cachedPath == workspace {
		return a.cachedSet
	}

	set, err := readBypassList(filepath.Join(workspace, bypassListRelPath))
	if err != nil {
		// Degrade to "no bypass" rather than blocking on an
		// unreadable list.
		set = map[string]bool{}
	}

	a.cachedSet = set
	a.cachedPath = workspace
	a.cacheLoaded = true
	return set
}

func readBypassList(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	set := map[string]bool{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[line] = true
	}
	return set, scanner.Err()
}
