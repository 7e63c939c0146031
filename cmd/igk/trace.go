package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/igk/kernel/internal/igkhash"
	"github.com/igk/kernel/internal/trace"
)

var (
	traceByPath   string
	traceByIntent string
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Query the provenance ledger",
	Long: `Reads <workspace>/.orchestration/agent_trace.jsonl.

Examples:
  igk trace show --path src/auth/login.ts
  igk trace show --intent INT-001
  igk trace verify src/auth/login.ts
  igk trace watch`,
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.AddCommand(traceShowCmd, traceVerifyCmd, traceWatchCmd)

	traceShowCmd.Flags().StringVar(&traceByPath, "path", "", "Filter entries touching this workspace-relative path")
	traceShowCmd.Flags().StringVar(&traceByIntent, "intent", "", "Filter entries related to this intent id")
}

var traceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List provenance entries, optionally filtered",
	RunE:  runTraceShow,
}

var traceVerifyCmd = &cobra.Command{
	Use:   "verify <path>",
	Short: "Check whether a file's current content still matches its most recent trace entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runTraceVerify,
}

var traceWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a line for every new trace entry as it is appended",
	Long: `Watches the orchestration directory with fsnotify and reports the
ledger's growing tail. Intended for a human keeping an eye on an
autonomous run in a second terminal; exits on SIGINT/SIGTERM via Ctrl-C.`,
	RunE: runTraceWatch,
}

func runTraceShow(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}
	ledger := trace.NewLedger(root)

	var entries []trace.Entry
	switch {
	case traceByPath != "":
		entries, err = ledger.FindByPath(traceByPath)
	case traceByIntent != "":
		entries, err = ledger.FindByIntent(traceByIntent)
	default:
		entries, err = ledger.ReadAll()
	}
	if err != nil {
		return err
	}

	if GetOutput() == "json" {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIMESTAMP\tFILE\tCLASS\tINTENT")
	fmt.Fprintln(w, "--\t---------\t----\t-----\t------")
	for _, e := range entries {
		for _, f := range e.Files {
			class := ""
			if len(f.Conversations) > 0 && len(f.Conversations[0].Ranges) > 0 {
				class = f.Conversations[0].Ranges[0].MutationClass
			}
			intentLabel := ""
			if ids := e.RelatedIntentIDs(); len(ids) > 0 {
				intentLabel = ids[0]
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Timestamp.Format("2006-01-02T15:04:05Z"), f.RelativePath, class, intentLabel)
		}
	}
	return w.Flush()
}

func runTraceVerify(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}
	relPath := args[0]
	ledger := trace.NewLedger(root)

	entries, err := ledger.FindByPath(relPath)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: %s", trace.ErrNoEntries, relPath)
	}
	last := entries[len(entries)-1]

	var lastHash string
	for _, f := range last.Files {
		if f.RelativePath != relPath {
			continue
		}
		for _, c := range f.Conversations {
			for _, r := range c.Ranges {
				lastHash = r.ContentHash
			}
		}
	}
	if lastHash == "" {
		return fmt.Errorf("%w: %s", trace.ErrNoContentHash, relPath)
	}

	data, err := os.ReadFile(filepath.Join(root, relPath))
	if err != nil {
		return err
	}
	current := igkhash.Hash(string(data))
	if current == lastHash {
		fmt.Printf("%s matches its most recent trace entry\n", relPath)
		return nil
	}
	fmt.Printf("%s has drifted: traced=%s current=%s\n", relPath, lastHash, current)
	return nil
}

func runTraceWatch(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}
	orchDir := filepath.Join(root, ".orchestration")
	if err := os.MkdirAll(orchDir, 0o755); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(orchDir); err != nil {
		return fmt.Errorf("watch %s: %w", orchDir, err)
	}

	ledgerPath := filepath.Join(orchDir, "agent_trace.jsonl")
	fmt.Printf("watching %s for new provenance entries (Ctrl-C to stop)\n", ledgerPath)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != ledgerPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fmt.Printf("%s changed\n", ledgerPath)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", werr)
		}
	}
}
