package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	dryRun           bool
	verbose          bool
	output           string
	cfgFile          string
	workspaceRootFlag string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "igk",
	Short: "Intent Governance Kernel CLI",
	Long: `igk inspects and drives the Intent Governance Kernel: the policy
layer that sits between an LLM-driven coding agent and the filesystem or
shell side effects it requests.

Core Commands:
  intent   Inspect and transition declared intents
  trace    Query the provenance ledger
  hooks    Run the hook pipeline against a simulated tool call; doctor
  lock     Compute and compare content hashes
  scope    Check a path against owned_scope patterns
  version  Show version information`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		syncConfigFlagToEnv()
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show what would happen without executing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (json, table, yaml)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.igk/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&workspaceRootFlag, "workspace", "", "Workspace root (default: current directory)")
}

// GetDryRun returns the dry-run flag value for use by subcommands.
func GetDryRun() bool { return dryRun }

// GetVerbose returns the verbose flag value for use by subcommands.
func GetVerbose() bool { return verbose }

// GetOutput returns the output format for use by subcommands.
func GetOutput() string { return output }

// GetConfigFile returns the config file path for use by subcommands.
func GetConfigFile() string { return cfgFile }

// VerbosePrintf prints only when verbose mode is enabled.
func VerbosePrintf(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format, args...)
	}
}

// workspaceRoot resolves the workspace root: the --workspace flag if
// given, else the current working directory.
func workspaceRoot() (string, error) {
	if workspaceRootFlag != "" {
		return workspaceRootFlag, nil
	}
	return os.Getwd()
}

func syncConfigFlagToEnv() {
	path := strings.TrimSpace(GetConfigFile())
	if path == "" {
		return
	}
	_ = os.Setenv("IGK_CONFIG", path)
}
