package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/igk/kernel/internal/igkhash"
)

// ErrStaleFile is returned by `igk lock check` when the target file's
// current content hash no longer matches the expected one (or is gone
// entirely) — the same condition the Optimistic Lock hook gates on.
var ErrStaleFile = errors.New("stale file")

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Compute and compare content hashes",
	Long: `Computes the canonical "sha256:<hex>" content hash the Optimistic
Lock hook gates writes on.

Examples:
  igk lock hash src/auth/login.ts
  igk lock check src/auth/login.ts --expected sha256:abc...`,
}

var lockExpected string

func init() {
	rootCmd.AddCommand(lockCmd)
	lockCmd.AddCommand(lockHashCmd, lockCheckCmd)

	lockCheckCmd.Flags().StringVar(&lockExpected, "expected", "", "Hash to compare against (required)")
	_ = lockCheckCmd.MarkFlagRequired("expected")
}

var lockHashCmd = &cobra.Command{
	Use:   "hash <path>",
	Short: "Print the current content hash of a workspace-relative file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLockHash,
}

var lockCheckCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Report whether a file still matches an expected hash",
	Args:  cobra.ExactArgs(1),
	RunE:  runLockCheck,
}

func runLockHash(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Join(root, args[0]))
	if err != nil {
		return err
	}
	fmt.Println(igkhash.Hash(string(data)))
	return nil
}

func runLockCheck(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Join(root, args[0]))
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("%s does not exist; STALE_FILE\n", args[0])
			return ErrStaleFile
		}
		return err
	}

	current := igkhash.Hash(string(data))
	if current == lockExpected {
		fmt.Printf("%s matches expected hash\n", args[0])
		return nil
	}
	fmt.Printf("%s is stale: expected=%s current=%s\n", args[0], lockExpected, current)
	return ErrStaleFile
}
