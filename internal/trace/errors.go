package trace

import "errors"

// Sentinel errors for the trace package. Using sentinels instead of ad-hoc
// fmt.Errorf allows callers to match with errors.Is for reliable error handling.
var (
	// ErrNoEntries is returned when a query finds no ledger entries
	// referencing the requested path or intent.
	ErrNoEntries = errors.New("no trace entries found")

	// ErrNoContentHash is returned when the most recent matching entry
	// carries no content hash to verify against.
	ErrNoContentHash = errors.New("trace entry carries no content hash")
)
