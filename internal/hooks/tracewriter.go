package hooks

import (
	"os"
	"path/filepath"
	"time"

	"github.com/igk/kernel/internal/igkhash"
	"github.com/igk/kernel/internal/mutation"
	"github.com/igk/kernel/internal/trace"
)

// TraceWriter is the final post-phase hook: after a successful write, it
// builds and appends one provenance entry linking the changed region to
// the active intent.
type TraceWriter struct {
	Ledger *trace.Ledger
}

// NewTraceWriter constructs the hook against the ledger located under
// workspaceRoot.
func NewTraceWriter(workspaceRoot string) *TraceWriter {
	return &TraceWriter{Ledger: trace.NewLedger(workspaceRoot)}
}

// ID identifies this hook for engine registration.
func (h *TraceWriter) ID() string { return "trace_writer" }

// PreExecute is a no-op; TraceWriter only participates in the post phase.
func (h *TraceWriter) PreExecute(ctx *Context) *Result { return nil }

// PostExecute appends a trace entry for a successful write tool call made
// under an active intent. It never blocks or reports an error back to the
// caller: provenance is best-effort.
func (h *TraceWriter) PostExecute(ctx *Context, toolErr error) {
	if toolErr != nil {
		return
	}
	if !isWriteTool(ctx.Tool.Tool) {
		return
	}
	if !ctx.Task.HasActiveIntent() {
		return
	}

	rawPath, ok := ctx.Tool.Path()
	if !ok {
		return
	}
	relPath := filepath.ToSlash(rawPath)
	abs := filepath.Join(ctx.Workspace, rawPath)

	_, statErr := os.Stat(abs)
	isNewFile := os.IsNotExist(statErr)

	content, ok := ctx.Tool.MutationContent()
	if !ok {
		if isNewFile {
			return
		}
		data, err := os.ReadFile(abs)
		if err != nil {
			return
		}
		content = string(data)
	}

	explicitClass, _ := ctx.Tool.ExplicitMutationClass()
	mutationClass := mutation.Classify(explicitClass, content, isNewFile)

	related := []trace.Related{{Type: "specification", Value: ctx.Task.ActiveIntentID}}
	if explicitIntentID, ok := ctx.Tool.ExplicitIntentID(); ok && explicitIntentID != ctx.Task.ActiveIntentID {
		related = append(related, trace.Related{Type: "requirement", Value: explicitIntentID})
	}

	entry := &trace.Entry{
		ID:        trace.NewEntryID(),
		Timestamp: time.Now().UTC(),
		Files: []trace.FileEntry{
			{
				RelativePath: relPath,
				Conversations: []trace.Conversation{
					{
						Contributor: trace.Contributor{
							EntityType:      ctx.Task.Contributor.EntityType,
							ModelIdentifier: ctx.Task.Contributor.ModelIdentifier,
						},
						Ranges: []trace.FileRange{
							{
								StartLine:     1,
								EndLine:       mutation.LineCount(content),
								ContentHash:   igkhash.Hash(content),
								MutationClass: string(mutationClass),
							},
						},
						Related: related,
					},
				},
			},
		},
	}

	if ctx.Task.VCSRevisionID != "" {
		entry.VCS = &trace.VCS{RevisionID: ctx.Task.VCSRevisionID}
	}

	h.Ledger.Append(entry)
}
