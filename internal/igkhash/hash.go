// Package igkhash computes the content-addressed digests the kernel uses to
// anchor provenance ranges and to detect stale files ahead of a write.
//
// A spatial hash is deliberately byte-for-byte: no normalization, no
// whitespace folding. Two regions hash equal only if their bytes are
// identical, so downstream comparisons (optimistic locking, trace
// verification) are a total, unambiguous equality check.
package igkhash

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// Prefix is the literal tag every canonical hash carries.
const Prefix = "sha256:"

// pattern matches the canonical form: "sha256:" followed by 64 lowercase hex digits.
var pattern = regexp.MustCompile(`^sha256:[0-9a-f]{64}$`)

// Hash returns the canonical content hash of text: "sha256:<64 lowercase hex>".
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return Prefix + hex.EncodeToString(sum[:])
}

// HashLines joins lines with "\n" and hashes the result. Used when a caller
// holds content as discrete lines rather than a single string.
func HashLines(lines []string) string {
	return Hash(strings.Join(lines, "\n"))
}

// Verify reports whether text hashes to the expected canonical value.
func Verify(text, expected string) bool {
	return Hash(text) == expected
}

// Valid reports whether s is a well-formed canonical hash.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
