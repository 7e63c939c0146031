// Package mutation labels a write as AST_REFACTOR (behavior-preserving) or
// INTENT_EVOLUTION (new behavior), so the trace ledger can distinguish
// mechanical edits from changes that alter what the code does.
//
// Classification follows a fixed priority cascade, the same pattern the
// kernel's taxonomy-adjacent code uses elsewhere to assign a tier from an
// ordered list of thresholds: check the cheapest, most authoritative signal
// first, fall through only when it is silent.
package mutation

import (
	"regexp"
	"strings"
)

// Class is the provenance label attached to a write.
type Class string

const (
	// ASTRefactor marks a behavior-preserving change: renames, whitespace,
	// import reordering, comment edits.
	ASTRefactor Class = "AST_REFACTOR"

	// IntentEvolution marks a change that introduces or alters behavior.
	IntentEvolution Class = "INTENT_EVOLUTION"
)

// evolutionSignals are regexes over a unified-diff-style or raw content
// body; any match classifies the write as IntentEvolution.
var evolutionSignals = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\+?\s*func\s+\w+\s*\(`),                     // new function/method
	regexp.MustCompile(`(?m)^\+?\s*(class|interface|type)\s+\w+`),        // new class/interface/type
	regexp.MustCompile(`(?m)^\+?\s*export\s+(const|function|class)\s+\w+`), // new exported value
	regexp.MustCompile(`(?i)(app|router)\.(get|post|put|delete|patch|use)\s*\(`), // new route/handler
	regexp.MustCompile(`(?m)^\+\s*if\s*\(.+\)\s*\{`),                     // new guarding conditional
}

// refactorSignals are regexes whose matches are individually weak evidence
// of a behavior-preserving change; two or more distinct matches are needed
// to classify as AST_REFACTOR (see Classify).
var refactorSignals = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\+\s*(func|class|interface|type|def)\s+\w+.*(renamed|rename)`), // renamed-only decl
	regexp.MustCompile(`(?m)^\+\s*$`),                       // whitespace-only line
	regexp.MustCompile(`(?m)^\+\s*(import|from\s+\S+\s+import|require\()`), // import-line change
	regexp.MustCompile(`(?m)^\+\s*(//|#|/\*|\*)`),            // comment-only change
}

// Classify decides the mutation class for a write.
//
// Priority, highest first:
//  1. explicitClass, if it is one of the two valid values, wins outright.
//  2. isNewFile forces IntentEvolution: a file that did not exist before
//     this write cannot be a "refactor" of anything.
//  3. Any evolution signal in content forces IntentEvolution.
//  4. Two or more distinct refactor signals with no evolution signal
//     present classify as AST_REFACTOR.
//  5. Otherwise, default to IntentEvolution — the conservative choice,
//     since over-reporting intent change is safer than hiding it.
func Classify(explicitClass string, content string, isNewFile bool) Class {
	if c := Class(explicitClass); c == ASTRefactor || c == IntentEvolution {
		return c
	}

	if isNewFile {
		return IntentEvolution
	}

	for _, re := range evolutionSignals {
		if re.MatchString(content) {
			return IntentEvolution
		}
	}

	matched := 0
	for _, re := range refactorSignals {
		if re.MatchString(content) {
			matched++
		}
	}
	if matched >= 2 {
		return ASTRefactor
	}

	return IntentEvolution
}

// LineCount returns the coarse line count used to anchor a trace range:
// the number of '\n' characters in content, plus one. This intentionally
// does not re-parse the target file to compute a real post-edit range; see
// DESIGN.md for the rationale this retains spec.md's documented behavior.
func LineCount(content string) int {
	return strings.Count(content, "\n") + 1
}
