package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/igk/kernel/internal/intent"
	"github.com/igk/kernel/internal/scope"
)

// ErrOutOfScope is returned by `igk scope test` when the path matches none
// of the candidate patterns — the same condition the Scope Enforcement
// hook blocks on.
var ErrOutOfScope = errors.New("out of scope")

var scopeCmd = &cobra.Command{
	Use:   "scope",
	Short: "Check a path against owned_scope patterns",
	Long: `Reports whether a workspace-relative path falls inside an intent's
owned_scope, using the same matcher the Scope Enforcement hook consults.

Examples:
  igk scope test src/auth/login.ts --pattern "src/auth/**"
  igk scope test src/payments/pay.ts --intent INT-001`,
}

var (
	scopeTestPatterns []string
	scopeTestIntentID string
)

func init() {
	rootCmd.AddCommand(scopeCmd)
	scopeCmd.AddCommand(scopeTestCmd)

	scopeTestCmd.Flags().StringArrayVar(&scopeTestPatterns, "pattern", nil, "owned_scope pattern to test against (repeatable)")
	scopeTestCmd.Flags().StringVar(&scopeTestIntentID, "intent", "", "Look up owned_scope from this intent instead of --pattern")
}

var scopeTestCmd = &cobra.Command{
	Use:   "test <path>",
	Short: "Test a path against one or more scope patterns",
	Args:  cobra.ExactArgs(1),
	RunE:  runScopeTest,
}

func runScopeTest(cmd *cobra.Command, args []string) error {
	path := args[0]
	patterns := scopeTestPatterns

	if scopeTestIntentID != "" {
		root, err := workspaceRoot()
		if err != nil {
			return err
		}
		in, ok, err := intent.NewStore(root).Find(scopeTestIntentID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", intent.ErrIntentNotFound, scopeTestIntentID)
		}
		patterns = in.OwnedScope
	}

	if len(patterns) == 0 {
		fmt.Printf("%s: no patterns to test against (unscoped)\n", path)
		return nil
	}

	if scope.AnyMatch(path, patterns) {
		fmt.Printf("%s: in scope\n", path)
		return nil
	}
	fmt.Printf("%s: out of scope (allowed: %v)\n", path, patterns)
	return ErrOutOfScope
}
