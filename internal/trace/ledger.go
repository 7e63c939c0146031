package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
)

// LedgerRelPath is the trace ledger's location relative to the workspace
// root, per spec.md §6.
const LedgerRelPath = ".orchestration/agent_trace.jsonl"

// Ledger appends provenance entries to agent_trace.jsonl. It exclusively
// owns that file; lines are never rewritten or deleted.
type Ledger struct {
	Path string
}

// NewLedger opens the ledger at <workspaceRoot>/.orchestration/agent_trace.jsonl.
func NewLedger(workspaceRoot string) *Ledger {
	return &Ledger{Path: filepath.Join(workspaceRoot, LedgerRelPath)}
}

// NewEntryID generates a fresh entry identifier.
func NewEntryID() string {
	return uuid.NewString()
}

// Append writes entry as one JSON line, creating the containing directory
// if missing. The write takes an exclusive advisory lock on the file for
// the duration of the append so concurrent agent processes on the same
// workspace don't interleave partial lines — the one piece of file
// locking the kernel performs, since it protects the ledger's own
// internal consistency rather than substituting for the optimistic-CAS
// story used for arbitrary source files (spec.md §5, §9).
//
// Per spec.md §4.6, append failures are logged but never propagated:
// provenance is best-effort and must not gate the edit it describes.
func (l *Ledger) Append(entry *Entry) {
	if err := l.append(entry); err != nil {
		log.Printf("igk: trace ledger append failed: %v", err)
	}
}

func (l *Ledger) append(entry *Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.Path), 0o755); err != nil {
		return fmt.Errorf("create orchestration dir: %w", err)
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal trace entry: %w", err)
	}
	line = append(line, '\n')

	f, err := os.OpenFile(l.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open trace ledger: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("lock trace ledger: %w", err)
	}
	defer func() { _ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN) }() //nolint:errcheck // unlock best-effort

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("append trace entry: %w", err)
	}
	return nil
}

// ReadAll loads every entry currently in the ledger, skipping malformed
// lines rather than failing the whole read.
func (l *Ledger) ReadAll() ([]Entry, error) {
	f, err := os.Open(l.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open trace ledger: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}

// FindByPath returns every entry referencing relativePath, newest last
// (ledger order), analogous to a provenance graph's Trace query.
func (l *Ledger) FindByPath(relativePath string) ([]Entry, error) {
	entries, err := l.ReadAll()
	if err != nil {
		return nil, err
	}
	var matches []Entry
	for _, e := range entries {
		for _, f := range e.Files {
			if f.RelativePath == relativePath {
				matches = append(matches, e)
				break
			}
		}
	}
	return matches, nil
}

// FindByIntent returns every entry that relates to intentID.
func (l *Ledger) FindByIntent(intentID string) ([]Entry, error) {
	entries, err := l.ReadAll()
	if err != nil {
		return nil, err
	}
	var matches []Entry
	for _, e := range entries {
		for _, id := range e.RelatedIntentIDs() {
			if id == intentID {
				matches = append(matches, e)
				break
			}
		}
	}
	return matches, nil
}

// Stats summarizes the ledger's contents for diagnostics.
type Stats struct {
	TotalEntries   int
	MutationClasses map[string]int
	UniqueIntents  int
}

// GetStats computes summary statistics over the whole ledger.
func (l *Ledger) GetStats() (*Stats, error) {
	entries, err := l.ReadAll()
	if err != nil {
		return nil, err
	}

	stats := &Stats{MutationClasses: map[string]int{}}
	intents := map[string]struct{}{}

	for _, e := range entries {
		stats.TotalEntries++
		for _, id := range e.RelatedIntentIDs() {
			intents[id] = struct{}{}
		}
		for _, f := range e.Files {
			for _, c := range f.Conversations {
				for _, r := range c.Ranges {
					stats.MutationClasses[r.MutationClass]++
				}
			}
		}
	}
	stats.UniqueIntents = len(intents)
	return stats, nil
}
