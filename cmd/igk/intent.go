package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/igk/kernel/internal/intent"
)

var intentCmd = &cobra.Command{
	Use:   "intent",
	Short: "Inspect and transition declared intents",
	Long: `Reads and writes the intent registry at <workspace>/.orchestration/active_intents.yaml.

Examples:
  igk intent list
  igk intent show INT-001
  igk intent select INT-001
  igk intent complete INT-001`,
}

func init() {
	rootCmd.AddCommand(intentCmd)
	intentCmd.AddCommand(intentListCmd, intentShowCmd, intentSelectCmd, intentCompleteCmd)
}

var intentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every declared intent",
	RunE:  runIntentList,
}

var intentShowCmd = &cobra.Command{
	Use:   "show <intent-id>",
	Short: "Show one intent's full record",
	Args:  cobra.ExactArgs(1),
	RunE:  runIntentShow,
}

var intentSelectCmd = &cobra.Command{
	Use:   "select <intent-id>",
	Short: "Select an intent, moving it to IN_PROGRESS",
	Args:  cobra.ExactArgs(1),
	RunE:  runIntentSelect,
}

var intentCompleteCmd = &cobra.Command{
	Use:   "complete <intent-id>",
	Short: "Mark an intent COMPLETED",
	Args:  cobra.ExactArgs(1),
	RunE:  runIntentComplete,
}

func runIntentList(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}
	intents, err := intent.NewStore(root).List()
	if err != nil {
		return err
	}

	switch GetOutput() {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(intents)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(intents)
	default:
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tNAME")
		fmt.Fprintln(w, "--\t------\t----")
		for _, in := range intents {
			fmt.Fprintf(w, "%s\t%s\t%s\n", in.ID, in.Status, in.Name)
		}
		return w.Flush()
	}
}

func runIntentShow(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}
	in, ok, err := intent.NewStore(root).Find(args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", intent.ErrIntentNotFound, args[0])
	}

	switch GetOutput() {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(in)
	default:
		enc := yaml.NewEncoder(os.Stdout)
		defer func() { _ = enc.Close() }()
		return enc.Encode(in)
	}
}

func runIntentSelect(cmd *cobra.Command, args []string) error {
	return transitionIntent(args[0], intent.StatusInProgress)
}

func runIntentComplete(cmd *cobra.Command, args []string) error {
	return transitionIntent(args[0], intent.StatusCompleted)
}

func transitionIntent(intentID string, status intent.Status) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}
	if GetDryRun() {
		fmt.Printf("would transition %s to %s\n", intentID, status)
		return nil
	}

	changed, err := intent.NewStore(root).SetStatus(intentID, status)
	if err != nil {
		return err
	}
	if changed {
		fmt.Printf("%s -> %s\n", intentID, status)
	} else {
		VerbosePrintf("%s is already %s\n", intentID, status)
	}
	return nil
}
